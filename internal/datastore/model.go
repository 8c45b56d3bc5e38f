// model.go this code defines the data model for the application
package datastore

import "time"

// Result is the durable, polling-visible outcome for one uploaded image.
// The JSON projection is a shared contract with the polling API: field names
// and types must not change. MinSizeCM stores 0 when the species has no
// legal minimum; MinSizeDisplay is the only place the absent/zero
// distinction survives.
type Result struct {
	ImageID        string    `gorm:"column:image_id;primaryKey" json:"ImageId"`
	Species        string    `gorm:"index:idx_results_species" json:"Species"`
	HebrewName     string    `json:"HebrewName"`
	NativeStatus   string    `json:"NativeStatus"`
	Population     string    `json:"Population"`
	AvgSizeCM      int       `json:"AvgSizeCM"`
	MinSizeCM      int       `json:"MinSizeCM"`
	MinSizeDisplay string    `json:"MinSizeDisplay"`
	SeasonalBan    bool      `json:"SeasonalBan"`
	Notes          string    `json:"Notes"`
	Description    string    `json:"Description"`
	Confidence     float64   `json:"Confidence"`
	NeedsReview    bool      `gorm:"index:idx_results_needs_review" json:"NeedsReview"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName overrides the gorm table name.
func (Result) TableName() string {
	return "results"
}
