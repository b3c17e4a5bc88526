// Package store persists the workspace in a local SQLite database.
// Saves are best-effort: the editor keeps running when a write fails,
// it just logs the error.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/cardpress/cardpress/pkg/logger"
	"github.com/cardpress/cardpress/pkg/models"
)

// setRecord is one persisted flashcard set. The template and rows are
// kept as a JSON payload: the schema is the Go model, not the table.
type setRecord struct {
	ID        string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"size:200"`
	Payload   []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// workspaceRecord is a single-row table carrying workspace-level
// state.
type workspaceRecord struct {
	ID          uint   `gorm:"primaryKey"`
	ActiveSetID string `gorm:"size:32"`
	UpdatedAt   time.Time
}

type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open creates or opens the database file and migrates the schema.
func Open(path string, log *logger.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&setRecord{}, &workspaceRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Load returns the persisted workspace, or nil when the database is
// empty (the caller then creates a default first set).
func (s *Store) Load() (*models.Workspace, error) {
	var records []setRecord
	if err := s.db.Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load sets: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	ws := &models.Workspace{}
	for _, rec := range records {
		var set models.FlashcardSet
		if err := json.Unmarshal(rec.Payload, &set); err != nil {
			s.log.Warn("skipping corrupt set %s: %v", rec.ID, err)
			continue
		}
		ws.Sets = append(ws.Sets, set)
	}

	var wr workspaceRecord
	if err := s.db.First(&wr).Error; err == nil {
		ws.ActiveSetID = wr.ActiveSetID
	}
	if ws.ActiveSet() == nil && len(ws.Sets) > 0 {
		ws.ActiveSetID = ws.Sets[0].ID
	}
	return ws, nil
}

// Save writes the whole workspace. Failures are logged, not returned:
// persistence must never crash the interactive session.
func (s *Store) Save(ws *models.Workspace) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		keep := make([]string, 0, len(ws.Sets))
		for i := range ws.Sets {
			set := &ws.Sets[i]
			payload, err := json.Marshal(set)
			if err != nil {
				return fmt.Errorf("failed to encode set %s: %w", set.ID, err)
			}
			rec := setRecord{
				ID:        set.ID,
				Name:      set.Name,
				Payload:   payload,
				CreatedAt: set.CreatedAt,
				UpdatedAt: set.UpdatedAt,
			}
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("failed to save set %s: %w", set.ID, err)
			}
			keep = append(keep, set.ID)
		}
		prune := tx.Where("1 = 1")
		if len(keep) > 0 {
			prune = tx.Where("id NOT IN ?", keep)
		}
		if err := prune.Delete(&setRecord{}).Error; err != nil {
			return fmt.Errorf("failed to prune deleted sets: %w", err)
		}
		wr := workspaceRecord{ID: 1, ActiveSetID: ws.ActiveSetID}
		return tx.Save(&wr).Error
	})
	if err != nil {
		s.log.Warn("workspace save failed: %v", err)
	}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
