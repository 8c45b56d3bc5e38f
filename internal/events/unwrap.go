// Package events normalizes raw queue message bodies into storage events.
package events

import (
	"encoding/json"
	"net/url"

	"github.com/fishfinder/fishfinder-go/internal/errors"
)

// ErrSkip marks a message that is not a storage-creation event. The caller
// acknowledges and discards it, it is never retried.
var ErrSkip = errors.NewStd("not a storage event, skipping")

// StorageEvent is the unwrapped notification of a stored object. Key is
// percent-decoded and uniquely identifies one uploaded image; it is the
// primary key for all downstream records.
type StorageEvent struct {
	Bucket string
	Key    string
}

// envelope is the outer wrapper format where the true event payload is
// embedded as a JSON string under a Message field.
type envelope struct {
	Message *string `json:"Message"`
}

// storageEventBody is the bit-exact storage notification shape.
type storageEventBody struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// Unwrap parses a raw message body into a StorageEvent. The body may arrive
// either as a direct storage notification or wrapped once in a notification
// envelope. Bodies that parse but do not carry a Records entry yield ErrSkip,
// including valid JSON of the wrong shape (arrays, strings, numbers).
// Malformed JSON at either parse level is a hard failure so the queue's
// redelivery policy governs it.
func Unwrap(body []byte) (StorageEvent, error) {
	// First pass detects the notification envelope.
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if isWrongShape(err) {
			return StorageEvent{}, ErrSkip
		}
		return StorageEvent{}, errors.New(err).
			Component("events").
			Category(errors.CategoryEnvelopeParse).
			Context("parse_level", "outer").
			Build()
	}

	payload := body
	if env.Message != nil {
		// Envelope wrapped: the Message field holds the storage event as a
		// JSON string, one level of indirection only.
		payload = []byte(*env.Message)
	}

	var event storageEventBody
	if err := json.Unmarshal(payload, &event); err != nil {
		if isWrongShape(err) {
			return StorageEvent{}, ErrSkip
		}
		return StorageEvent{}, errors.New(err).
			Component("events").
			Category(errors.CategoryEnvelopeParse).
			Context("parse_level", "inner").
			Build()
	}

	if len(event.Records) == 0 {
		return StorageEvent{}, ErrSkip
	}

	record := event.Records[0].S3
	if record.Bucket.Name == "" || record.Object.Key == "" {
		return StorageEvent{}, ErrSkip
	}

	// Storage event notifications percent-encode object keys, spaces arrive
	// as "+" and special characters as %XX.
	key, err := url.QueryUnescape(record.Object.Key)
	if err != nil {
		return StorageEvent{}, errors.New(err).
			Component("events").
			Category(errors.CategoryEnvelopeParse).
			Context("key", record.Object.Key).
			Build()
	}

	return StorageEvent{
		Bucket: record.Bucket.Name,
		Key:    key,
	}, nil
}

// isWrongShape reports whether err is an unmarshal type mismatch: the body
// was valid JSON but not the expected object shape. Such bodies can never
// carry a Records entry, so they are discarded rather than redelivered
// forever as poison messages.
func isWrongShape(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}
