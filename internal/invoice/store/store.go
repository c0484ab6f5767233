// Package store persists the editor's current invoice between
// sessions, the way the browser original kept a versioned document
// in local storage.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/clock"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/config"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

// SchemaVersion tracks the invoice document shape. Older documents
// load fine because missing fields default additively; the version
// only records what wrote the row.
const SchemaVersion = 6

const currentDocKey = "current"

// InvoiceDocument is one stored invoice snapshot.
type InvoiceDocument struct {
	ID            snowflake.ID   `gorm:"primaryKey"`
	DocKey        string         `gorm:"uniqueIndex;not null"`
	SchemaVersion int            `gorm:"not null"`
	Payload       datatypes.JSON `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceDocument) TableName() string { return "invoice_documents" }

// Store loads and saves the current invoice document.
type Store struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

// Open opens (and migrates) the SQLite-backed store.
func Open(cfg config.Config, log *zap.Logger, genID *snowflake.Node, clk clock.Clock) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open invoice store: %w", err)
	}
	return New(db, log, genID, clk)
}

// New builds a store on an existing gorm handle.
func New(db *gorm.DB, log *zap.Logger, genID *snowflake.Node, clk clock.Clock) (*Store, error) {
	if err := db.AutoMigrate(&InvoiceDocument{}); err != nil {
		return nil, fmt.Errorf("migrate invoice store: %w", err)
	}
	return &Store{
		db:    db,
		log:   log.Named("invoice.store"),
		genID: genID,
		clock: clk,
	}, nil
}

// Load returns the saved invoice, with defaults filled in for any
// field an older document predates. A missing or corrupt document
// falls back to a fresh default invoice; loading never fails the
// editing session.
func (s *Store) Load(ctx context.Context) (domain.Invoice, error) {
	inv := domain.Default(s.clock.Now())

	var doc InvoiceDocument
	err := s.db.WithContext(ctx).Where(&InvoiceDocument{DocKey: currentDocKey}).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inv, nil
	}
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("load invoice: %w", err)
	}

	// Unmarshal over the defaults: fields absent from the saved
	// payload keep their default values (additive migration).
	if err := json.Unmarshal(doc.Payload, &inv); err != nil {
		s.log.Warn("corrupt invoice document, starting fresh",
			zap.Int64("doc_id", int64(doc.ID)),
			zap.Error(err))
		inv = domain.Default(s.clock.Now())
	}
	inv.Normalize()
	return inv, nil
}

// Save upserts the current invoice document.
func (s *Store) Save(ctx context.Context, inv domain.Invoice) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode invoice: %w", err)
	}

	var doc InvoiceDocument
	err = s.db.WithContext(ctx).Where(&InvoiceDocument{DocKey: currentDocKey}).First(&doc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc = InvoiceDocument{
			ID:            s.genID.Generate(),
			DocKey:        currentDocKey,
			SchemaVersion: SchemaVersion,
			Payload:       payload,
		}
		if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
			return fmt.Errorf("save invoice: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("save invoice: %w", err)
	}

	updates := map[string]interface{}{
		"payload":        datatypes.JSON(payload),
		"schema_version": SchemaVersion,
		"updated_at":     s.clock.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Model(&doc).Updates(updates).Error; err != nil {
		return fmt.Errorf("save invoice: %w", err)
	}
	return nil
}

// Reset deletes the saved document and returns a fresh default.
func (s *Store) Reset(ctx context.Context) (domain.Invoice, error) {
	if err := s.db.WithContext(ctx).
		Where(&InvoiceDocument{DocKey: currentDocKey}).
		Delete(&InvoiceDocument{}).Error; err != nil {
		return domain.Invoice{}, fmt.Errorf("reset invoice: %w", err)
	}
	return domain.Default(s.clock.Now()), nil
}
