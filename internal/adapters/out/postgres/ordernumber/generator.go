// Package ordernumber generates order numbers from a PostgreSQL sequence.
// The sequence increments atomically and survives restarts, so numbers are
// unique across every server instance drawing from the same database.
// Sequence values drawn inside a transaction that later rolls back are
// burned, not reused: the series is strictly increasing but not gap-free.
package ordernumber

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const sequenceName = "order_number_seq"

// PostgresOrderNumberGenerator implements ports.OrderNumberGenerator backed
// by a database sequence.
type PostgresOrderNumberGenerator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresOrderNumberGenerator creates a generator over the given connection.
func NewPostgresOrderNumberGenerator(db *gorm.DB) *PostgresOrderNumberGenerator {
	return &PostgresOrderNumberGenerator{
		db:  db,
		now: time.Now,
	}
}

// EnsureSequence creates the backing sequence if it does not exist yet.
// Called once at startup alongside schema migration.
func (g *PostgresOrderNumberGenerator) EnsureSequence(ctx context.Context) error {
	return g.db.WithContext(ctx).
		Exec("CREATE SEQUENCE IF NOT EXISTS " + sequenceName).Error
}

// Next draws the next sequence value and formats it as ORD-{year}-{seq:06d}.
// Sequence values beyond six digits widen the number rather than wrap.
func (g *PostgresOrderNumberGenerator) Next(ctx context.Context) (string, error) {
	var seq int64
	err := g.db.WithContext(ctx).
		Raw("SELECT nextval('" + sequenceName + "')").
		Scan(&seq).Error
	if err != nil {
		return "", fmt.Errorf("draw order number: %w", err)
	}

	return fmt.Sprintf("ORD-%d-%06d", g.now().Year(), seq), nil
}
