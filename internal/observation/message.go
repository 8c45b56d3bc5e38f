// message.go formats the localized notification for a processed image
package observation

import (
	"fmt"

	"github.com/fishfinder/fishfinder-go/internal/datastore"
)

// Seasonal ban phrases, one of two fixed localized renderings.
const (
	banActive   = "פעיל"
	banInactive = "לא פעיל"
)

// Subject returns the notification subject line for a result.
func Subject(result *datastore.Result) string {
	return fmt.Sprintf("תוצאה: %s", result.HebrewName)
}

// Message returns the notification body for a result, combining the
// localized name, source label, confidence percentage, status fields,
// minimum size display value, seasonal ban status and regulation notes.
func Message(result *datastore.Result) string {
	banStatus := banInactive
	if result.SeasonalBan {
		banStatus = banActive
	}

	return fmt.Sprintf(
		"זיהוי: %s (%s) - ביטחון: %.0f%%\n"+
			"סטטוס: %s | %s\n"+
			"גודל מינימלי: %s\n"+
			"איסור עונתי: %s\n"+
			"הערות: %s",
		result.HebrewName, result.Species, result.Confidence*100,
		result.NativeStatus, result.Population,
		result.MinSizeDisplay,
		banStatus,
		result.Notes,
	)
}
