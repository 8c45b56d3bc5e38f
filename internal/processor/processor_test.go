package processor

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/datastore"
	"github.com/fishfinder/fishfinder-go/internal/errors"
	"github.com/fishfinder/fishfinder-go/internal/fishnet"
)

// fakeStore serves fixed object bytes, or fails every fetch.
type fakeStore struct {
	data    []byte
	err     error
	fetches int
}

func (f *fakeStore) Fetch(_ context.Context, _, _ string) (io.ReadCloser, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// fakeClassifier returns a canned prediction and records the scratch path it
// was handed.
type fakeClassifier struct {
	pred  fishnet.Prediction
	paths []string
}

func (f *fakeClassifier) Classify(imagePath string) fishnet.Prediction {
	f.paths = append(f.paths, imagePath)
	return f.pred
}

// fakeResults records every save, or fails.
type fakeResults struct {
	saved []datastore.Result
	err   error
}

func (f *fakeResults) Save(result *datastore.Result) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *result)
	return nil
}

// fakeNotifier records publishes, or fails.
type fakeNotifier struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeNotifier) Publish(_ context.Context, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

type fixture struct {
	proc       *Processor
	store      *fakeStore
	classifier *fakeClassifier
	results    *fakeResults
	notifier   *fakeNotifier
	scratchDir string
}

func newFixture(t *testing.T, pred fishnet.Prediction) *fixture {
	t.Helper()

	scratchDir := t.TempDir()
	settings := &conf.Settings{}
	settings.Storage.ScratchDir = scratchDir

	store := &fakeStore{data: []byte("jpeg bytes")}
	classifier := &fakeClassifier{pred: pred}
	results := &fakeResults{}
	notifier := &fakeNotifier{}

	return &fixture{
		proc:       New(settings, catalog.New(), classifier, store, results, notifier),
		store:      store,
		classifier: classifier,
		results:    results,
		notifier:   notifier,
		scratchDir: scratchDir,
	}
}

func eventBody(key string) []byte {
	return []byte(`{"Records":[{"s3":{"bucket":{"name":"fish-uploads"},"object":{"key":"` + key + `"}}}]}`)
}

func scratchFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestHandleConfidentResult(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.91})

	outcome, err := fx.proc.Handle(context.Background(), eventBody("uploads/fish.jpg"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)

	require.Len(t, fx.results.saved, 1)
	saved := fx.results.saved[0]
	assert.Equal(t, "uploads/fish.jpg", saved.ImageID)
	assert.Equal(t, "Sparus aurata", saved.Species)
	assert.False(t, saved.NeedsReview)

	// Classification ran on the downloaded scratch file, named from the key's
	// final segment.
	require.Len(t, fx.classifier.paths, 1)
	assert.Equal(t, filepath.Join(fx.scratchDir, "fish.jpg"), fx.classifier.paths[0])

	// Persist happens before notify, and the notification went out.
	require.Len(t, fx.notifier.subjects, 1)
	assert.Contains(t, fx.notifier.subjects[0], saved.HebrewName)
	assert.Contains(t, fx.notifier.bodies[0], "Sparus aurata")

	assert.Empty(t, scratchFiles(t, fx.scratchDir), "scratch file must be removed")
}

func TestHandleLowConfidenceFlagsReview(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.42})

	outcome, err := fx.proc.Handle(context.Background(), eventBody("uploads/fish.jpg"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)

	require.Len(t, fx.results.saved, 1)
	assert.True(t, fx.results.saved[0].NeedsReview)
	assert.Len(t, fx.notifier.subjects, 1, "low confidence still notifies")
}

func TestHandleSkipsNonStorageMessage(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})

	outcome, err := fx.proc.Handle(context.Background(), []byte(`{"Event":"s3:TestEvent"}`))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)

	assert.Zero(t, fx.store.fetches, "skip must not touch storage")
	assert.Empty(t, fx.results.saved)
	assert.Empty(t, fx.notifier.subjects)
}

func TestHandleMalformedBodyFails(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})

	_, err := fx.proc.Handle(context.Background(), []byte(`{"Records":`))
	require.Error(t, err)
	assert.Zero(t, fx.store.fetches)
	assert.Empty(t, fx.results.saved)
}

func TestHandleFetchFailure(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})
	fx.store.err = errors.NewStd("object not found")

	_, err := fx.proc.Handle(context.Background(), eventBody("uploads/fish.jpg"))
	require.Error(t, err)

	assert.Empty(t, fx.results.saved, "no record on fetch failure")
	assert.Empty(t, fx.notifier.subjects, "no notification on fetch failure")
	assert.Empty(t, scratchFiles(t, fx.scratchDir), "nothing left behind on fetch failure")
}

func TestHandleSaveFailureLeavesNoScratch(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})
	fx.results.err = errors.NewStd("database unavailable")

	_, err := fx.proc.Handle(context.Background(), eventBody("uploads/fish.jpg"))
	require.Error(t, err)

	assert.Empty(t, fx.notifier.subjects, "no notification when persist failed")
	assert.Empty(t, scratchFiles(t, fx.scratchDir), "scratch removed on persist failure")
}

func TestHandleInferenceErrorPersistsSentinel(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{
		Label: fishnet.ErrorLabel,
		Err:   errors.NewStd("decoding image: unexpected EOF"),
	})

	outcome, err := fx.proc.Handle(context.Background(), eventBody("uploads/corrupt.jpg"))
	require.NoError(t, err, "a broken image completes with a sentinel record")
	assert.Equal(t, OutcomeCompleted, outcome)

	require.Len(t, fx.results.saved, 1)
	saved := fx.results.saved[0]
	assert.Equal(t, fishnet.ErrorLabel, saved.Species)
	assert.True(t, saved.NeedsReview)
	assert.Zero(t, saved.Confidence)

	assert.Empty(t, scratchFiles(t, fx.scratchDir))
}

func TestHandleNotifyFailureStillCompletes(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})
	fx.notifier.err = errors.NewStd("broker unreachable")

	outcome, err := fx.proc.Handle(context.Background(), eventBody("uploads/fish.jpg"))
	require.NoError(t, err, "publish failure after persist must not fail the task")
	assert.Equal(t, OutcomeCompleted, outcome)
	assert.Len(t, fx.results.saved, 1)
}

func TestHandleRedeliveryIsIdempotent(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})
	body := eventBody("uploads/fish.jpg")

	for i := 0; i < 2; i++ {
		outcome, err := fx.proc.Handle(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCompleted, outcome)
	}

	// Both runs targeted the same record key with the same payload; the store
	// upsert collapses them into one row.
	require.Len(t, fx.results.saved, 2)
	assert.Equal(t, fx.results.saved[0], fx.results.saved[1])
	assert.Empty(t, scratchFiles(t, fx.scratchDir))
}

func TestHandlePercentEncodedKey(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, fishnet.Prediction{Label: "Sparus aurata", Confidence: 0.9})

	outcome, err := fx.proc.Handle(context.Background(), eventBody("uploads/my+fish%231.jpg"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)

	require.Len(t, fx.results.saved, 1)
	assert.Equal(t, "uploads/my fish#1.jpg", fx.results.saved[0].ImageID,
		"record keyed by the decoded object key")
}
