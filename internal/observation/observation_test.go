package observation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/errors"
	"github.com/fishfinder/fishfinder-go/internal/fishnet"
)

func TestReviewThresholdBoundary(t *testing.T) {
	t.Parallel()

	cat := catalog.New()

	tests := []struct {
		name       string
		confidence float64
		wantReview bool
	}{
		{name: "well above threshold", confidence: 0.95, wantReview: false},
		{name: "exactly at threshold", confidence: 0.70, wantReview: false},
		{name: "just below threshold", confidence: 0.6999, wantReview: true},
		{name: "well below threshold", confidence: 0.10, wantReview: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := Build(cat, "uploads/a.jpg", fishnet.Prediction{
				Label:      "Sparus aurata",
				Confidence: tt.confidence,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantReview, result.NeedsReview)
		})
	}
}

func TestBuildMinimumSize(t *testing.T) {
	t.Parallel()

	cat := catalog.New()

	t.Run("species without legal minimum stores zero", func(t *testing.T) {
		t.Parallel()
		result, err := Build(cat, "uploads/a.jpg", fishnet.Prediction{
			Label:      "Sparus aurata",
			Confidence: 0.9,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.MinSizeCM)
		assert.Equal(t, NoMinimumSize, result.MinSizeDisplay)
	})

	t.Run("species with legal minimum renders size", func(t *testing.T) {
		t.Parallel()
		result, err := Build(cat, "uploads/a.jpg", fishnet.Prediction{
			Label:      "Epinephelus marginatus",
			Confidence: 0.9,
		})
		require.NoError(t, err)
		assert.Equal(t, 40, result.MinSizeCM)
		assert.Equal(t, "40 ס״מ", result.MinSizeDisplay)
		assert.True(t, result.SeasonalBan)
	})
}

func TestBuildFields(t *testing.T) {
	t.Parallel()

	cat := catalog.New()

	result, err := Build(cat, "uploads/fish 1.jpg", fishnet.Prediction{
		Label:      "Sparus aurata",
		Confidence: 0.87654321,
	})
	require.NoError(t, err)

	species, err := cat.Lookup("Sparus aurata")
	require.NoError(t, err)

	assert.Equal(t, "uploads/fish 1.jpg", result.ImageID)
	assert.Equal(t, "Sparus aurata", result.Species)
	assert.Equal(t, species.Name, result.HebrewName)
	assert.Equal(t, species.NativeStatus, result.NativeStatus)
	assert.Equal(t, species.PopulationStatus, result.Population)
	assert.Equal(t, species.AvgSizeCM, result.AvgSizeCM)
	assert.Equal(t, species.Regulations.Notes, result.Notes)
	assert.Equal(t, species.Description, result.Description)
	// Confidence is rounded to 4 decimals for storage.
	assert.InDelta(t, 0.8765, result.Confidence, 1e-9)
}

func TestBuildErrorSentinel(t *testing.T) {
	t.Parallel()

	cat := catalog.New()

	result, err := Build(cat, "uploads/bad.jpg", fishnet.Prediction{
		Label:      fishnet.ErrorLabel,
		Confidence: 0,
		Err:        errors.NewStd("decode failed"),
	})
	require.NoError(t, err)

	assert.Equal(t, fishnet.ErrorLabel, result.Species)
	assert.Equal(t, "שגיאה בזיהוי", result.HebrewName)
	assert.True(t, result.NeedsReview)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, NoMinimumSize, result.MinSizeDisplay)
	assert.Equal(t, "decode failed", result.Notes)
	assert.Equal(t, "decode failed", result.Description)
}

func TestBuildUnknownLabel(t *testing.T) {
	t.Parallel()

	_, err := Build(catalog.New(), "uploads/a.jpg", fishnet.Prediction{
		Label:      "Tilapia zilli",
		Confidence: 0.9,
	})
	assert.ErrorIs(t, err, catalog.ErrUnknownSpecies)
}

func TestMessageFormatting(t *testing.T) {
	t.Parallel()

	cat := catalog.New()

	t.Run("seasonal ban active", func(t *testing.T) {
		t.Parallel()
		result, err := Build(cat, "uploads/a.jpg", fishnet.Prediction{
			Label:      "Epinephelus marginatus",
			Confidence: 0.92,
		})
		require.NoError(t, err)

		assert.Equal(t, "תוצאה: "+result.HebrewName, Subject(&result))

		body := Message(&result)
		assert.Contains(t, body, "ביטחון: 92%")
		assert.Contains(t, body, "גודל מינימלי: 40 ס״מ")
		assert.Contains(t, body, "איסור עונתי: פעיל")
	})

	t.Run("seasonal ban inactive", func(t *testing.T) {
		t.Parallel()
		result, err := Build(cat, "uploads/a.jpg", fishnet.Prediction{
			Label:      "Sparus aurata",
			Confidence: 0.75,
		})
		require.NoError(t, err)

		body := Message(&result)
		assert.Contains(t, body, "איסור עונתי: לא פעיל")
		assert.Contains(t, body, "גודל מינימלי: "+NoMinimumSize)
	})
}
