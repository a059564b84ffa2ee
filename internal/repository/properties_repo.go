package repository

import (
	"context"

	"github.com/apostol1s/technico-web/internal/domain"
)

// PropertiesRepository persists Property rows. Single-row lookups return
// domain.ErrNotFound when no row matches. List lookups return empty slices;
// the "empty means not found" convention lives in the service layer.
// OwnerTaxID is resolved on every read.
type PropertiesRepository interface {
	Create(ctx context.Context, property *domain.Property) (int64, error)
	Save(ctx context.Context, property *domain.Property) error
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	FindByParcelID(ctx context.Context, parcelID string) (*domain.Property, error)
	FindByOwnerTaxID(ctx context.Context, taxID string) ([]*domain.Property, error)
	FindByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Property, error)
	FindAll(ctx context.Context) ([]*domain.Property, error)

	// DeleteCascade removes the property row together with every repair
	// filed against it, in one transaction.
	DeleteCascade(ctx context.Context, id int64) error
}
