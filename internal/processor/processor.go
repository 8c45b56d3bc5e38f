// Package processor orchestrates one image task per queue message: unwrap,
// download, classify, persist, notify. At-least-once semantics: the caller
// acknowledges only when Handle reports success or skip.
package processor

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/datastore"
	"github.com/fishfinder/fishfinder-go/internal/errors"
	"github.com/fishfinder/fishfinder-go/internal/events"
	"github.com/fishfinder/fishfinder-go/internal/fishnet"
	"github.com/fishfinder/fishfinder-go/internal/imagestore"
	"github.com/fishfinder/fishfinder-go/internal/logging"
	"github.com/fishfinder/fishfinder-go/internal/notification"
	"github.com/fishfinder/fishfinder-go/internal/observation"
	"github.com/fishfinder/fishfinder-go/internal/telemetry"
)

// Outcome tells the caller how to settle the message.
type Outcome int

const (
	// OutcomeCompleted means the result was persisted, acknowledge the message.
	OutcomeCompleted Outcome = iota
	// OutcomeSkipped means the message is not a storage event, acknowledge
	// and discard without retry.
	OutcomeSkipped
)

// Classifier is the opaque inference function. It never fails the task, a
// broken image yields the sentinel prediction.
type Classifier interface {
	Classify(imagePath string) fishnet.Prediction
}

// ResultStore is the durable store write the processor needs.
type ResultStore interface {
	Save(result *datastore.Result) error
}

// Processor holds the immutable, once-loaded collaborators. Safe to share
// between worker instances since nothing here is mutated per task.
type Processor struct {
	catalog    *catalog.Catalog
	classifier Classifier
	store      imagestore.Store
	results    ResultStore
	notifier   notification.Publisher
	scratchDir string
	log        *slog.Logger
}

// New constructs a processor from its collaborators.
func New(settings *conf.Settings, cat *catalog.Catalog, classifier Classifier,
	store imagestore.Store, results ResultStore, notifier notification.Publisher) *Processor {
	return &Processor{
		catalog:    cat,
		classifier: classifier,
		store:      store,
		results:    results,
		notifier:   notifier,
		scratchDir: settings.ScratchDir(),
		log:        logging.ForService("processor"),
	}
}

// Handle processes one raw message body to completion. A non-nil error means
// the message must not be acknowledged so the queue redelivers it.
func (p *Processor) Handle(ctx context.Context, body []byte) (Outcome, error) {
	start := time.Now()

	event, err := events.Unwrap(body)
	if err != nil {
		if errors.Is(err, events.ErrSkip) {
			p.log.Info("Skipping unrecognised message")
			telemetry.TasksSkipped.Inc()
			return OutcomeSkipped, nil
		}
		telemetry.TasksFailed.Inc()
		return OutcomeCompleted, err
	}

	p.log.Info("Processing image", "bucket", event.Bucket, "key", event.Key)

	result, err := p.process(ctx, event)
	if err != nil {
		telemetry.TasksFailed.Inc()
		return OutcomeCompleted, err
	}

	if result.NeedsReview {
		telemetry.ResultsFlaggedForReview.Inc()
	}
	telemetry.TasksProcessed.Inc()
	telemetry.TaskDuration.Observe(time.Since(start).Seconds())

	p.log.Info("Done",
		"key", event.Key,
		"species", result.Species,
		"confidence_pct", result.Confidence*100,
		"needs_review", result.NeedsReview)
	return OutcomeCompleted, nil
}

// process runs the download, classify, persist and notify steps for an
// unwrapped event and returns the persisted record.
func (p *Processor) process(ctx context.Context, event events.StorageEvent) (*datastore.Result, error) {
	scratchPath, cleanup, err := p.download(ctx, event)
	// The scratch file must be gone before control returns to the caller on
	// every path, including a failed or partial download.
	defer cleanup()
	if err != nil {
		return nil, err
	}

	// Inference cannot fail the task, a bad image becomes a zero-confidence
	// sentinel prediction flagged for review.
	pred := p.classifier.Classify(scratchPath)

	result, err := observation.Build(p.catalog, event.Key, pred)
	if err != nil {
		return nil, errors.Wrap(err).
			Component("processor").
			Category(errors.CategoryProcessing).
			Context("key", event.Key).
			Context("label", pred.Label).
			Build()
	}

	if err := p.results.Save(&result); err != nil {
		return nil, err
	}

	// The result is durably visible to pollers from here on. Notification is
	// best effort: a publish failure is reported but must not push the
	// message back for a wasteful recompute.
	subject := observation.Subject(&result)
	if err := p.notifier.Publish(ctx, subject, observation.Message(&result)); err != nil {
		telemetry.NotificationFailures.Inc()
		p.log.Error("Notification publish failed after persist",
			"key", event.Key, "error", err)
	}

	return &result, nil
}

// download fetches the object into a scratch file named from the key's final
// path segment. The returned cleanup removes whatever was created and is
// always safe to call.
func (p *Processor) download(ctx context.Context, event events.StorageEvent) (string, func(), error) {
	scratchPath := filepath.Join(p.scratchDir, filepath.Base(event.Key))
	cleanup := func() {
		if err := os.Remove(scratchPath); err != nil && !os.IsNotExist(err) {
			p.log.Warn("Failed to remove scratch file", "path", scratchPath, "error", err)
		}
	}

	reader, err := p.store.Fetch(ctx, event.Bucket, event.Key)
	if err != nil {
		return scratchPath, cleanup, err
	}
	defer reader.Close()

	f, err := os.Create(scratchPath)
	if err != nil {
		return scratchPath, cleanup, errors.New(err).
			Component("processor").
			Category(errors.CategoryFileIO).
			Context("path", scratchPath).
			Build()
	}

	_, copyErr := io.Copy(f, reader)
	closeErr := f.Close()
	if copyErr != nil {
		return scratchPath, cleanup, errors.New(copyErr).
			Component("processor").
			Category(errors.CategoryObjectFetch).
			Context("bucket", event.Bucket).
			Context("key", event.Key).
			Build()
	}
	if closeErr != nil {
		return scratchPath, cleanup, errors.New(closeErr).
			Component("processor").
			Category(errors.CategoryFileIO).
			Context("path", scratchPath).
			Build()
	}

	return scratchPath, cleanup, nil
}
