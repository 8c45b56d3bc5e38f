// Package worker implements the queue worker command.
package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/datastore"
	"github.com/fishfinder/fishfinder-go/internal/fishnet"
	"github.com/fishfinder/fishfinder-go/internal/imagestore"
	"github.com/fishfinder/fishfinder-go/internal/logging"
	"github.com/fishfinder/fishfinder-go/internal/notification"
	"github.com/fishfinder/fishfinder-go/internal/processor"
	"github.com/fishfinder/fishfinder-go/internal/queue"
	"github.com/fishfinder/fishfinder-go/internal/telemetry"
)

// Command creates the worker command that consumes upload events until
// interrupted.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the image classification worker",
		Long:  `Consume image upload events from the queue, classify each image and persist the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(settings)
		},
	}
}

// runWorker wires the once-loaded collaborators together and runs the
// consume loop until SIGINT or SIGTERM.
func runWorker(settings *conf.Settings) error {
	log := logging.ForService("worker")

	// Load the model and the catalog once: both are expensive or immutable
	// and shared read-only across the process lifetime.
	cat := catalog.New()
	classifier, err := fishnet.New(settings, cat)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}

	store, err := imagestore.New(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	results := datastore.New(settings)
	if results == nil {
		return fmt.Errorf("no result store enabled in configuration")
	}
	if err := results.Open(); err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	defer func() {
		if err := results.Close(); err != nil {
			log.Error("Failed to close result store", "error", err)
		}
	}()

	notifier, err := notification.New(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	telemetry.Serve(settings)

	proc := processor.New(settings, cat, classifier, store, results, notifier)

	consumer, err := queue.NewConsumer(settings)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Worker started", "node", settings.Main.Name, "queue", settings.Queue.Queue)

	return consumer.Start(ctx, func(ctx context.Context, msg *queue.Message) error {
		_, err := proc.Handle(ctx, msg.Body)
		return err
	})
}
