package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

const dueDateLayout = "2006-01-02"

// ConfigStore implements ports.ConfigStore using SQLite. The billing
// configuration is a single row, replaced in place on every save.
type ConfigStore struct {
	db *DB
}

// NewConfigStore creates a new SQLite billing config store.
func NewConfigStore(db *DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// Get retrieves the singleton configuration.
func (s *ConfigStore) Get(ctx context.Context) (billing.Config, error) {
	if err := s.db.ensureReady(); err != nil {
		return billing.Config{}, err
	}

	var (
		amount  string
		dueDate string
		cfg     billing.Config
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT monthly_amount, due_date, updated_at
		FROM billing_config
		WHERE id = 1
	`).Scan(&amount, &dueDate, &cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return billing.Config{}, ErrNotFound
	}
	if err != nil {
		return billing.Config{}, err
	}

	cfg.MonthlyAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return billing.Config{}, fmt.Errorf("parse monthly amount: %w", err)
	}
	cfg.DueDate, err = time.ParseInLocation(dueDateLayout, dueDate, time.UTC)
	if err != nil {
		return billing.Config{}, fmt.Errorf("parse due date: %w", err)
	}
	return cfg, nil
}

// Save creates or replaces the singleton configuration.
func (s *ConfigStore) Save(ctx context.Context, cfg billing.Config) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO billing_config (id, monthly_amount, due_date, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			monthly_amount = excluded.monthly_amount,
			due_date = excluded.due_date,
			updated_at = excluded.updated_at
	`, cfg.MonthlyAmount.String(), cfg.DueDate.Format(dueDateLayout), cfg.UpdatedAt)
	return err
}

// Ensure interface compliance.
var _ ports.ConfigStore = (*ConfigStore)(nil)
