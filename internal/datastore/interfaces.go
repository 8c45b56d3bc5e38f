// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrResultNotFound is returned by Get when no record exists for the image id.
var ErrResultNotFound = errors.NewStd("result not found")

// Interface abstracts the underlying database implementation and defines the
// operations the worker and the polling surface need.
type Interface interface {
	Open() error
	Save(result *Result) error
	Get(imageID string) (Result, error)
	GetNeedingReview(limit int) ([]Result, error)
	Close() error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// Save upserts a result keyed by image id. Redelivery of the same message
// recomputes an identical record, so last write wins.
func (ds *DataStore) Save(result *Result) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	err := ds.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "image_id"}},
		UpdateAll: true,
	}).Create(result).Error
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("image_id", result.ImageID).
			Build()
	}
	return nil
}

// Get retrieves a result by image id.
func (ds *DataStore) Get(imageID string) (Result, error) {
	var result Result
	err := ds.DB.First(&result, "image_id = ?", imageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, ErrResultNotFound
		}
		return Result{}, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("image_id", imageID).
			Build()
	}
	return result, nil
}

// GetNeedingReview returns up to limit low-confidence results flagged for
// review, most recent first. Used for retraining triage.
func (ds *DataStore) GetNeedingReview(limit int) ([]Result, error) {
	var results []Result
	err := ds.DB.Where("needs_review = ?", true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return results, nil
}

// Close closes the underlying database connection if one is open.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
