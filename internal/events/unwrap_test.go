package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fishfinder/fishfinder-go/internal/errors"
)

// directBody builds a direct storage event body for a bucket and raw
// (percent-encoded) key.
func directBody(bucket, rawKey string) []byte {
	return []byte(`{"Records":[{"s3":{"bucket":{"name":"` + bucket + `"},"object":{"key":"` + rawKey + `"}}}]}`)
}

// wrappedBody embeds the given payload as a JSON string under Message.
func wrappedBody(t *testing.T, payload []byte) []byte {
	t.Helper()
	inner, err := json.Marshal(string(payload))
	require.NoError(t, err)
	return []byte(`{"Message":` + string(inner) + `}`)
}

func TestUnwrapDirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		bucket     string
		rawKey     string
		wantBucket string
		wantKey    string
	}{
		{
			name:       "plain key",
			bucket:     "fish-uploads",
			rawKey:     "uploads/abc.jpg",
			wantBucket: "fish-uploads",
			wantKey:    "uploads/abc.jpg",
		},
		{
			name:       "plus decodes to space",
			bucket:     "fish-uploads",
			rawKey:     "uploads/my+fish.jpg",
			wantBucket: "fish-uploads",
			wantKey:    "uploads/my fish.jpg",
		},
		{
			name:       "percent escapes decode",
			bucket:     "fish-uploads",
			rawKey:     "uploads/d%C3%A9nis%2B1.jpg",
			wantBucket: "fish-uploads",
			wantKey:    "uploads/dénis+1.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event, err := Unwrap(directBody(tt.bucket, tt.rawKey))
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, event.Bucket)
			assert.Equal(t, tt.wantKey, event.Key)
		})
	}
}

func TestUnwrapWrappedMatchesDirect(t *testing.T) {
	t.Parallel()

	direct := directBody("fish-uploads", "uploads/my+fish.jpg")

	directEvent, err := Unwrap(direct)
	require.NoError(t, err)

	wrappedEvent, err := Unwrap(wrappedBody(t, direct))
	require.NoError(t, err)

	assert.Equal(t, directEvent, wrappedEvent)
}

func TestUnwrapSkip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no records field", body: `{"Event":"s3:TestEvent"}`},
		{name: "empty records array", body: `{"Records":[]}`},
		{name: "records without storage shape", body: `{"Records":[{"eventSource":"other"}]}`},
		{name: "wrapped without records", body: `{"Message":"{\"Event\":\"s3:TestEvent\"}"}`},
		{name: "top level array", body: `[{"eventSource":"other"}]`},
		{name: "top level string", body: `"s3:TestEvent"`},
		{name: "top level number", body: `42`},
		{name: "records is not an array", body: `{"Records":"none"}`},
		{name: "message is not a string", body: `{"Message":7}`},
		{name: "wrapped array", body: `{"Message":"[1,2,3]"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unwrap([]byte(tt.body))
			assert.ErrorIs(t, err, ErrSkip)
		})
	}
}

func TestUnwrapMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed outer json", body: `{"Records":`},
		{name: "message is not json", body: `{"Message":"not json at all"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unwrap([]byte(tt.body))
			require.Error(t, err)
			// Malformed JSON is a hard failure for the queue to retry, never
			// a silent skip.
			assert.False(t, errors.Is(err, ErrSkip))

			var ee *errors.EnhancedError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, errors.CategoryEnvelopeParse, ee.Category)
		})
	}
}
