// Package observation builds the durable result record from a classifier
// prediction and the species catalog.
package observation

import (
	"fmt"
	"math"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/datastore"
	"github.com/fishfinder/fishfinder-go/internal/fishnet"
)

// ReviewThreshold is the confidence below which a result is flagged for
// manual review and retraining triage. Fixed policy, not configurable:
// downstream dataset curation depends on this exact boundary.
const ReviewThreshold = 0.70

// NoMinimumSize is the localized phrase rendered when a species has no legal
// minimum size.
const NoMinimumSize = "אין גודל מינימלי"

// errorRecordName is the localized display name of the sentinel error record.
const errorRecordName = "שגיאה בזיהוי"

// Build combines a prediction with its catalog record into the result record
// persisted for polling. The sentinel error label maps to a synthetic record
// instead of failing. Pure function, no I/O.
func Build(cat *catalog.Catalog, imageID string, pred fishnet.Prediction) (datastore.Result, error) {
	if pred.Label == fishnet.ErrorLabel {
		return buildErrorResult(imageID, pred), nil
	}

	species, err := cat.Lookup(pred.Label)
	if err != nil {
		// The label came from the model's own index space, a miss here means
		// the catalog and the trained head are out of sync.
		return datastore.Result{}, err
	}

	minSizeCM := 0
	minSizeDisplay := NoMinimumSize
	if species.Regulations.MinSizeCM != nil {
		minSizeCM = *species.Regulations.MinSizeCM
		minSizeDisplay = FormatMinSize(minSizeCM)
	}

	return datastore.Result{
		ImageID:        imageID,
		Species:        pred.Label,
		HebrewName:     species.Name,
		NativeStatus:   species.NativeStatus,
		Population:     species.PopulationStatus,
		AvgSizeCM:      species.AvgSizeCM,
		MinSizeCM:      minSizeCM,
		MinSizeDisplay: minSizeDisplay,
		SeasonalBan:    species.Regulations.SeasonalBan,
		Notes:          species.Regulations.Notes,
		Description:    species.Description,
		Confidence:     roundConfidence(pred.Confidence),
		NeedsReview:    pred.Confidence < ReviewThreshold,
	}, nil
}

// buildErrorResult produces the synthetic zero-confidence record for
// inference failures. The failure reason lands in the notes and description
// so the poller sees why the image could not be identified.
func buildErrorResult(imageID string, pred fishnet.Prediction) datastore.Result {
	reason := ""
	if pred.Err != nil {
		reason = pred.Err.Error()
	}
	return datastore.Result{
		ImageID:        imageID,
		Species:        fishnet.ErrorLabel,
		HebrewName:     errorRecordName,
		NativeStatus:   "Unknown",
		Population:     "Unknown",
		MinSizeDisplay: NoMinimumSize,
		Notes:          reason,
		Description:    reason,
		Confidence:     0,
		NeedsReview:    true,
	}
}

// FormatMinSize renders a minimum size in cm with its localized unit suffix.
func FormatMinSize(cm int) string {
	return fmt.Sprintf("%d ס״מ", cm)
}

// roundConfidence rounds to 4 decimals for storage.
func roundConfidence(confidence float64) float64 {
	return math.Round(confidence*10000) / 10000
}
