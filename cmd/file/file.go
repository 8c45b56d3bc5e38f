// Package file implements the single image classification command used for
// local testing without the queue.
package file

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/fishnet"
	"github.com/fishfinder/fishfinder-go/internal/observation"
)

// Command creates the file command for classifying a single local image.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "file [image.jpg]",
		Short: "Classify a single image file",
		Long:  `Classify a single local image and print the full result record. Useful for model and dataset work.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return classifyFile(settings, args[0])
		},
	}
}

// classifyFile runs the full classify and build pipeline on one local file
// and prints the record.
func classifyFile(settings *conf.Settings, imagePath string) error {
	cat := catalog.New()
	classifier, err := fishnet.New(settings, cat)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}

	pred := classifier.Classify(imagePath)

	result, err := observation.Build(cat, filepath.Base(imagePath), pred)
	if err != nil {
		return err
	}

	lowNote := ""
	if result.NeedsReview {
		lowNote = "  (low - consider adding to dataset)"
	}

	fmt.Println("========================================")
	fmt.Printf("IDENTIFIED:   %s\n", result.Species)
	fmt.Printf("CONFIDENCE:   %.1f%%%s\n", result.Confidence*100, lowNote)
	fmt.Printf("HEBREW:       %s\n", result.HebrewName)
	fmt.Printf("NATIVE:       %s\n", result.NativeStatus)
	fmt.Printf("POPULATION:   %s\n", result.Population)
	fmt.Printf("AVERAGE SIZE: %d cm\n", result.AvgSizeCM)
	fmt.Printf("MINIMUM SIZE: %s\n", result.MinSizeDisplay)
	seasonalBan := "No"
	if result.SeasonalBan {
		seasonalBan = "Yes"
	}
	fmt.Printf("SEASONAL BAN: %s\n", seasonalBan)
	fmt.Printf("NOTES:        %s\n", result.Notes)
	fmt.Printf("DESCRIPTION:  %s\n", result.Description)
	fmt.Println("========================================")

	return nil
}
