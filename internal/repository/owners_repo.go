package repository

import (
	"context"

	"github.com/apostol1s/technico-web/internal/domain"
)

// OwnersRepository persists Owner rows. Lookups return domain.ErrNotFound
// when no row matches; they do not filter on the deleted flag (callers decide
// whether to honor it). FindByCredentials is the exception: it never returns
// soft-deleted rows.
type OwnersRepository interface {
	Create(ctx context.Context, owner *domain.Owner) (int64, error)
	Save(ctx context.Context, owner *domain.Owner) error
	FindByID(ctx context.Context, id int64) (*domain.Owner, error)
	FindByTaxID(ctx context.Context, taxID string) (*domain.Owner, error)
	FindByEmail(ctx context.Context, email string) (*domain.Owner, error)
	FindByCredentials(ctx context.Context, email, password string) (*domain.Owner, error)
	FindAll(ctx context.Context) ([]*domain.Owner, error)

	// DeleteCascade removes the owner row together with every owned
	// property and, transitively, their repairs, in one transaction.
	DeleteCascade(ctx context.Context, id int64) error
}
