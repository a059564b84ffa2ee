package repository

import (
	"context"
	"time"

	"github.com/apostol1s/technico-web/internal/domain"
)

// RepairsRepository persists Repair rows. Single-row lookups return
// domain.ErrNotFound when no row matches.
type RepairsRepository interface {
	Create(ctx context.Context, repair *domain.Repair) (int64, error)
	Save(ctx context.Context, repair *domain.Repair) error
	FindByID(ctx context.Context, id int64) (*domain.Repair, error)
	FindByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Repair, error)

	// FindByDate returns repairs whose scheduled window contains at
	// (scheduled_start_date <= at <= scheduled_end_date).
	FindByDate(ctx context.Context, at time.Time) ([]*domain.Repair, error)
	FindAll(ctx context.Context) ([]*domain.Repair, error)
	Delete(ctx context.Context, id int64) error
}
