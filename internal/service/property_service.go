package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/repository"
)

// PropertyService is the property lifecycle manager. It also serves as the
// lookup façade for property read paths.
type PropertyService interface {
	Create(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error)
	Update(ctx context.Context, req UpdatePropertyRequest) (*domain.Property, error)
	FindByParcelID(ctx context.Context, parcelID string) (*domain.Property, error)

	// FindByID resolves a non-deleted property; soft-deleted rows count as
	// not found here.
	FindByID(ctx context.Context, id int64) (*domain.Property, error)

	// FindByOwnerTaxID returns all properties of the owner, soft-deleted
	// included. An empty result is a not-found error, not an empty success.
	FindByOwnerTaxID(ctx context.Context, taxID string) ([]*domain.Property, error)
	FindByOwnerTaxIDExcludingDeleted(ctx context.Context, taxID string) ([]*domain.Property, error)

	// FindByOwnerID returns the owner's non-deleted properties; empty means
	// not found.
	FindByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Property, error)
	FindAll(ctx context.Context) ([]*domain.Property, error)

	// SoftDelete resolves via FindByID, which already excludes deleted rows,
	// so soft-deleting an already-deleted property fails with not-found.
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}

type CreatePropertyRequest struct {
	ParcelID         string              `json:"parcel_id"`
	PropertyAddress  string              `json:"property_address"`
	ConstructionYear int                 `json:"construction_year"`
	PropertyType     domain.PropertyType `json:"property_type"`
	OwnerTaxID       string              `json:"owner_tax_id"`
}

// UpdatePropertyRequest covers the mutable field set. The parcel id and the
// owner binding are immutable after creation.
type UpdatePropertyRequest struct {
	ID               int64               `json:"-"`
	PropertyAddress  string              `json:"property_address"`
	ConstructionYear int                 `json:"construction_year"`
	PropertyType     domain.PropertyType `json:"property_type"`
}

type propertyService struct {
	properties repository.PropertiesRepository
	owners     OwnerService
	logger     *zap.Logger
}

func NewPropertyService(properties repository.PropertiesRepository, owners OwnerService, logger *zap.Logger) PropertyService {
	return &propertyService{properties: properties, owners: owners, logger: logger}
}

func (s *propertyService) Create(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error) {
	owner, err := s.owners.FindByTaxID(ctx, req.OwnerTaxID)
	if err != nil {
		return nil, fmt.Errorf("not a valid owner reference %q: %w", req.OwnerTaxID, domain.ErrValidation)
	}
	if owner.Deleted {
		return nil, fmt.Errorf("not a valid owner reference %q: %w", req.OwnerTaxID, domain.ErrValidation)
	}

	if err := domain.ValidateParcelID(req.ParcelID); err != nil {
		return nil, err
	}
	if err := domain.ValidateConstructionYear(req.ConstructionYear); err != nil {
		return nil, err
	}
	if err := domain.ValidatePropertyType(req.PropertyType); err != nil {
		return nil, err
	}

	if _, err := s.properties.FindByParcelID(ctx, req.ParcelID); err == nil {
		return nil, fmt.Errorf("parcel id %s: %w", req.ParcelID, domain.ErrConflict)
	}

	property := &domain.Property{
		ParcelID:         req.ParcelID,
		PropertyAddress:  req.PropertyAddress,
		ConstructionYear: req.ConstructionYear,
		PropertyType:     req.PropertyType,
		Deleted:          false,
		OwnerID:          owner.ID,
		OwnerTaxID:       owner.TaxID,
	}
	if _, err := s.properties.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.logger.Info("Property created",
		zap.Int64("property_id", property.ID),
		zap.String("parcel_id", property.ParcelID),
		zap.String("owner_tax_id", property.OwnerTaxID))
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, req UpdatePropertyRequest) (*domain.Property, error) {
	property, err := s.properties.FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("property %d: %w", req.ID, err)
	}
	if property.Deleted {
		return nil, fmt.Errorf("cannot update a deleted property: %w", domain.ErrState)
	}

	property.PropertyAddress = req.PropertyAddress
	if err := domain.ValidateConstructionYear(req.ConstructionYear); err != nil {
		return nil, err
	}
	property.ConstructionYear = req.ConstructionYear
	if err := domain.ValidatePropertyType(req.PropertyType); err != nil {
		return nil, err
	}
	property.PropertyType = req.PropertyType

	if err := s.properties.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property %d: %w", req.ID, err)
	}
	return property, nil
}

func (s *propertyService) FindByParcelID(ctx context.Context, parcelID string) (*domain.Property, error) {
	property, err := s.properties.FindByParcelID(ctx, parcelID)
	if err != nil {
		return nil, fmt.Errorf("property with parcel id %s: %w", parcelID, err)
	}
	if property.Deleted {
		s.logger.Debug("Property is marked as deleted", zap.String("parcel_id", parcelID))
	}
	return property, nil
}

func (s *propertyService) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("property %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("property %d: %w", id, err)
	}
	if property.Deleted {
		return nil, fmt.Errorf("property %d: %w", id, domain.ErrNotFound)
	}
	return property, nil
}

func (s *propertyService) FindByOwnerTaxID(ctx context.Context, taxID string) ([]*domain.Property, error) {
	properties, err := s.properties.FindByOwnerTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("properties for tax id %s: %w", taxID, domain.ErrNotFound)
	}
	return properties, nil
}

func (s *propertyService) FindByOwnerTaxIDExcludingDeleted(ctx context.Context, taxID string) ([]*domain.Property, error) {
	properties, err := s.properties.FindByOwnerTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	filtered := properties[:0]
	for _, p := range properties {
		if !p.Deleted {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("properties for tax id %s: %w", taxID, domain.ErrNotFound)
	}
	return filtered, nil
}

func (s *propertyService) FindByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Property, error) {
	properties, err := s.properties.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	filtered := properties[:0]
	for _, p := range properties {
		if !p.Deleted {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("properties for owner id %d: %w", ownerID, domain.ErrNotFound)
	}
	return filtered, nil
}

func (s *propertyService) FindAll(ctx context.Context) ([]*domain.Property, error) {
	return s.properties.FindAll(ctx)
}

func (s *propertyService) SoftDelete(ctx context.Context, id int64) error {
	property, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	property.Deleted = true
	if err := s.properties.Save(ctx, property); err != nil {
		return fmt.Errorf("failed to soft-delete property %d: %w", id, err)
	}
	return nil
}

func (s *propertyService) HardDelete(ctx context.Context, id int64) error {
	if err := s.properties.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("property %d: %w", id, err)
	}
	s.logger.Info("Property hard-deleted with cascade", zap.Int64("property_id", id))
	return nil
}
