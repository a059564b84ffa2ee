package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/repository"
)

// OwnerService is the owner lifecycle manager.
type OwnerService interface {
	Create(ctx context.Context, req CreateOwnerRequest) (*domain.Owner, error)
	Update(ctx context.Context, req UpdateOwnerRequest) (*domain.Owner, error)
	FindByTaxID(ctx context.Context, taxID string) (*domain.Owner, error)
	FindByEmail(ctx context.Context, email string) (*domain.Owner, error)
	FindByID(ctx context.Context, id int64) (*domain.Owner, error)
	FindAll(ctx context.Context) ([]*domain.Owner, error)

	// SoftDelete flips the deleted flag. It returns false only when the
	// owner cannot be located or saved; soft-deleting an already-deleted
	// owner still returns true.
	SoftDelete(ctx context.Context, id int64) bool
	HardDelete(ctx context.Context, id int64) error

	// VerifyCredentials resolves a non-deleted owner by email and password.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.Owner, error)
}

type CreateOwnerRequest struct {
	TaxID       string `json:"tax_id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UpdateOwnerRequest covers the mutable field set. The tax id, name and
// surname are immutable after creation.
type UpdateOwnerRequest struct {
	ID          int64  `json:"-"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type ownerService struct {
	owners repository.OwnersRepository
	logger *zap.Logger
}

func NewOwnerService(owners repository.OwnersRepository, logger *zap.Logger) OwnerService {
	return &ownerService{owners: owners, logger: logger}
}

func (s *ownerService) Create(ctx context.Context, req CreateOwnerRequest) (*domain.Owner, error) {
	if err := domain.ValidateTaxID(req.TaxID); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(req.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateSurname(req.Surname); err != nil {
		return nil, err
	}
	if err := domain.ValidatePhone(req.PhoneNumber); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	// Natural keys are unique among all rows, soft-deleted ones included.
	if err := s.checkTaxIDFree(ctx, req.TaxID); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	owner := &domain.Owner{
		TaxID:       req.TaxID,
		Name:        req.Name,
		Surname:     req.Surname,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Deleted:     false,
	}
	if _, err := s.owners.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to save owner: %w", err)
	}

	s.logger.Info("Owner created", zap.Int64("owner_id", owner.ID), zap.String("tax_id", owner.TaxID))
	return owner, nil
}

func (s *ownerService) Update(ctx context.Context, req UpdateOwnerRequest) (*domain.Owner, error) {
	owner, err := s.owners.FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("owner %d: %w", req.ID, err)
	}
	if owner.Deleted {
		return nil, fmt.Errorf("cannot update a deleted owner: %w", domain.ErrState)
	}

	owner.Address = req.Address
	if err := domain.ValidatePhone(req.PhoneNumber); err != nil {
		return nil, err
	}
	owner.PhoneNumber = req.PhoneNumber
	if err := domain.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if owner.Email != req.Email {
		if err := s.checkEmailFree(ctx, req.Email); err != nil {
			return nil, err
		}
		owner.Email = req.Email
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	owner.Password = req.Password

	if err := s.owners.Save(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to save owner: %w", err)
	}
	return owner, nil
}

func (s *ownerService) FindByTaxID(ctx context.Context, taxID string) (*domain.Owner, error) {
	return s.owners.FindByTaxID(ctx, taxID)
}

func (s *ownerService) FindByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	return s.owners.FindByEmail(ctx, email)
}

func (s *ownerService) FindByID(ctx context.Context, id int64) (*domain.Owner, error) {
	return s.owners.FindByID(ctx, id)
}

func (s *ownerService) FindAll(ctx context.Context) ([]*domain.Owner, error) {
	return s.owners.FindAll(ctx)
}

func (s *ownerService) SoftDelete(ctx context.Context, id int64) bool {
	owner, err := s.owners.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("Soft delete: owner not found", zap.Int64("owner_id", id))
		return false
	}
	owner.Deleted = true
	if err := s.owners.Save(ctx, owner); err != nil {
		s.logger.Error("Soft delete: save failed", zap.Int64("owner_id", id), zap.Error(err))
		return false
	}
	return true
}

func (s *ownerService) HardDelete(ctx context.Context, id int64) error {
	if err := s.owners.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("owner %d: %w", id, err)
	}
	s.logger.Info("Owner hard-deleted with cascade", zap.Int64("owner_id", id))
	return nil
}

func (s *ownerService) VerifyCredentials(ctx context.Context, email, password string) (*domain.Owner, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email cannot be blank: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("password cannot be blank: %w", domain.ErrValidation)
	}
	owner, err := s.owners.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrNotFound)
	}
	return owner, nil
}

func (s *ownerService) checkTaxIDFree(ctx context.Context, taxID string) error {
	if _, err := s.owners.FindByTaxID(ctx, taxID); err == nil {
		return fmt.Errorf("tax id %s: %w", taxID, domain.ErrConflict)
	}
	return nil
}

func (s *ownerService) checkEmailFree(ctx context.Context, email string) error {
	if _, err := s.owners.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	}
	return nil
}
