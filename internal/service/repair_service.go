package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/repository"
)

// RepairService is the work-order lifecycle manager. It owns the status
// state machine and the two permission-scoped update paths.
type RepairService interface {
	Create(ctx context.Context, req CreateRepairRequest) (*domain.Repair, error)

	// UpdateAdmin mutates the full field set, including status and cost.
	// Status writes must follow the legal transition graph.
	UpdateAdmin(ctx context.Context, req UpdateRepairAdminRequest) (*domain.Repair, error)

	// UpdateOwner mutates the narrow field set available to the owner of
	// record: type, description and address only.
	UpdateOwner(ctx context.Context, req UpdateRepairOwnerRequest) (*domain.Repair, error)

	Accept(ctx context.Context, id int64) (*domain.Repair, error)
	Decline(ctx context.Context, id int64) (*domain.Repair, error)
	Start(ctx context.Context, id int64) (*domain.Repair, error)
	Complete(ctx context.Context, id int64) (*domain.Repair, error)

	FindByID(ctx context.Context, id int64) (*domain.Repair, error)

	// FindByOwner flattens the repairs of the owner's non-deleted
	// properties. An empty result is a not-found error.
	FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Repair, error)

	// FindByPropertyID returns the property's non-deleted repairs; empty
	// means not found.
	FindByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Repair, error)

	// FindByDate returns repairs whose scheduled window contains at.
	FindByDate(ctx context.Context, at time.Time) ([]*domain.Repair, error)

	// FindAll fails with a not-found error when the table is empty.
	FindAll(ctx context.Context) ([]*domain.Repair, error)

	// SoftDelete returns false only when the repair cannot be located or
	// saved; soft-deleting an already-deleted repair still returns true.
	SoftDelete(ctx context.Context, id int64) bool
	HardDelete(ctx context.Context, id int64) error
}

type CreateRepairRequest struct {
	PropertyID         int64             `json:"property_id"`
	RepairType         domain.RepairType `json:"repair_type"`
	ShortDescription   string            `json:"short_description"`
	Description        string            `json:"description"`
	SubmissionDate     *domain.DateTime  `json:"submission_date"`
	ScheduledStartDate *domain.DateTime  `json:"scheduled_start_date"`
	ScheduledEndDate   *domain.DateTime  `json:"scheduled_end_date"`
	ProposedCost       float64           `json:"proposed_cost"`
}

type UpdateRepairAdminRequest struct {
	ID                 int64               `json:"-"`
	RepairType         domain.RepairType   `json:"repair_type"`
	ShortDescription   string              `json:"short_description"`
	Description        string              `json:"description"`
	ScheduledStartDate *domain.DateTime    `json:"scheduled_start_date"`
	ScheduledEndDate   *domain.DateTime    `json:"scheduled_end_date"`
	RepairAddress      string              `json:"repair_address"`
	RepairStatus       domain.RepairStatus `json:"repair_status"`
	ProposedCost       float64             `json:"proposed_cost"`
}

type UpdateRepairOwnerRequest struct {
	ID            int64             `json:"-"`
	RepairType    domain.RepairType `json:"repair_type"`
	Description   string            `json:"description"`
	RepairAddress string            `json:"repair_address"`
}

type repairService struct {
	repairs    repository.RepairsRepository
	properties repository.PropertiesRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewRepairService(repairs repository.RepairsRepository, properties repository.PropertiesRepository, logger *zap.Logger) RepairService {
	return &repairService{repairs: repairs, properties: properties, logger: logger, now: time.Now}
}

func (s *repairService) Create(ctx context.Context, req CreateRepairRequest) (*domain.Repair, error) {
	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil || property.Deleted {
		return nil, fmt.Errorf("not a valid property reference %d: %w", req.PropertyID, domain.ErrValidation)
	}

	if err := domain.ValidateRepairType(req.RepairType); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.ShortDescription != "" {
		if err := domain.ValidateShortDescription(req.ShortDescription); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateProposedCost(req.ProposedCost); err != nil {
		return nil, err
	}

	submission := req.SubmissionDate
	if submission == nil {
		submission = domain.NewDateTime(s.now())
	}
	if err := domain.ValidateSubmissionDate(submission.Time, s.now()); err != nil {
		return nil, err
	}

	repair := &domain.Repair{
		RepairType:         req.RepairType,
		ShortDescription:   req.ShortDescription,
		SubmissionDate:     submission,
		Description:        req.Description,
		ScheduledStartDate: req.ScheduledStartDate,
		ScheduledEndDate:   req.ScheduledEndDate,
		ProposedCost:       req.ProposedCost,
		RepairStatus:       domain.RepairStatusPending,
		RepairAddress:      property.PropertyAddress,
		Deleted:            false,
		PropertyID:         property.ID,
	}
	if _, err := s.repairs.Create(ctx, repair); err != nil {
		return nil, fmt.Errorf("failed to create repair: %w", err)
	}

	s.logger.Info("Repair created",
		zap.Int64("repair_id", repair.ID),
		zap.Int64("property_id", repair.PropertyID),
		zap.String("repair_type", string(repair.RepairType)))
	return repair, nil
}

func (s *repairService) UpdateAdmin(ctx context.Context, req UpdateRepairAdminRequest) (*domain.Repair, error) {
	repair, err := s.mutable(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateRepairType(req.RepairType); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.ShortDescription != "" {
		if err := domain.ValidateShortDescription(req.ShortDescription); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateProposedCost(req.ProposedCost); err != nil {
		return nil, err
	}
	if !req.RepairStatus.Valid() {
		return nil, fmt.Errorf("repair status %q is not a valid status: %w", req.RepairStatus, domain.ErrValidation)
	}
	if !repair.RepairStatus.CanTransitionTo(req.RepairStatus) {
		return nil, fmt.Errorf("illegal status transition %s -> %s: %w",
			repair.RepairStatus, req.RepairStatus, domain.ErrState)
	}

	repair.RepairType = req.RepairType
	repair.ShortDescription = req.ShortDescription
	repair.Description = req.Description
	repair.ScheduledStartDate = req.ScheduledStartDate
	repair.ScheduledEndDate = req.ScheduledEndDate
	repair.RepairAddress = req.RepairAddress
	repair.RepairStatus = req.RepairStatus
	repair.ProposedCost = req.ProposedCost

	if err := s.repairs.Save(ctx, repair); err != nil {
		return nil, fmt.Errorf("failed to update repair %d: %w", req.ID, err)
	}
	return repair, nil
}

func (s *repairService) UpdateOwner(ctx context.Context, req UpdateRepairOwnerRequest) (*domain.Repair, error) {
	repair, err := s.mutable(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateRepairType(req.RepairType); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(req.Description); err != nil {
		return nil, err
	}

	repair.RepairType = req.RepairType
	repair.Description = req.Description
	repair.RepairAddress = req.RepairAddress

	if err := s.repairs.Save(ctx, repair); err != nil {
		return nil, fmt.Errorf("failed to update repair %d: %w", req.ID, err)
	}
	return repair, nil
}

// Accept marks a pending repair as accepted by the owner and moves it to
// INPROGRESS.
func (s *repairService) Accept(ctx context.Context, id int64) (*domain.Repair, error) {
	return s.transition(ctx, id, domain.RepairStatusInProgress, func(rp *domain.Repair) {
		accepted := true
		rp.AcceptanceStatus = &accepted
	})
}

// Decline marks a pending repair as declined by the owner. DECLINED is
// terminal.
func (s *repairService) Decline(ctx context.Context, id int64) (*domain.Repair, error) {
	return s.transition(ctx, id, domain.RepairStatusDeclined, func(rp *domain.Repair) {
		declined := false
		rp.AcceptanceStatus = &declined
	})
}

// Start stamps the actual start date on an in-progress repair.
func (s *repairService) Start(ctx context.Context, id int64) (*domain.Repair, error) {
	return s.transition(ctx, id, domain.RepairStatusInProgress, func(rp *domain.Repair) {
		if rp.ActualStartDate == nil {
			rp.ActualStartDate = domain.NewDateTime(s.now())
		}
	})
}

// Complete moves an in-progress repair to COMPLETE and stamps the actual
// end date.
func (s *repairService) Complete(ctx context.Context, id int64) (*domain.Repair, error) {
	return s.transition(ctx, id, domain.RepairStatusComplete, func(rp *domain.Repair) {
		if rp.ActualEndDate == nil {
			rp.ActualEndDate = domain.NewDateTime(s.now())
		}
	})
}

func (s *repairService) transition(ctx context.Context, id int64, next domain.RepairStatus, mutate func(*domain.Repair)) (*domain.Repair, error) {
	repair, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	if !repair.RepairStatus.CanTransitionTo(next) {
		return nil, fmt.Errorf("illegal status transition %s -> %s: %w",
			repair.RepairStatus, next, domain.ErrState)
	}
	repair.RepairStatus = next
	mutate(repair)
	if err := s.repairs.Save(ctx, repair); err != nil {
		return nil, fmt.Errorf("failed to update repair %d: %w", id, err)
	}
	s.logger.Info("Repair status changed",
		zap.Int64("repair_id", id), zap.String("repair_status", string(next)))
	return repair, nil
}

// mutable resolves a repair that is still open to field updates.
func (s *repairService) mutable(ctx context.Context, id int64) (*domain.Repair, error) {
	repair, err := s.repairs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repair %d: %w", id, err)
	}
	if repair.Deleted {
		return nil, fmt.Errorf("cannot update a deleted repair: %w", domain.ErrState)
	}
	return repair, nil
}

func (s *repairService) FindByID(ctx context.Context, id int64) (*domain.Repair, error) {
	repair, err := s.repairs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repair %d: %w", id, err)
	}
	return repair, nil
}

func (s *repairService) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Repair, error) {
	properties, err := s.properties.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := []*domain.Repair{}
	for _, p := range properties {
		if p.Deleted {
			continue
		}
		repairs, err := s.repairs.FindByPropertyID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, repairs...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("repairs for owner %d: %w", ownerID, domain.ErrNotFound)
	}
	return out, nil
}

func (s *repairService) FindByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Repair, error) {
	repairs, err := s.repairs.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	filtered := repairs[:0]
	for _, rp := range repairs {
		if !rp.Deleted {
			filtered = append(filtered, rp)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("repairs for property %d: %w", propertyID, domain.ErrNotFound)
	}
	return filtered, nil
}

func (s *repairService) FindByDate(ctx context.Context, at time.Time) ([]*domain.Repair, error) {
	return s.repairs.FindByDate(ctx, at)
}

func (s *repairService) FindAll(ctx context.Context) ([]*domain.Repair, error) {
	repairs, err := s.repairs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(repairs) == 0 {
		return nil, fmt.Errorf("no repairs recorded: %w", domain.ErrNotFound)
	}
	return repairs, nil
}

func (s *repairService) SoftDelete(ctx context.Context, id int64) bool {
	repair, err := s.repairs.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("Soft delete: repair not found", zap.Int64("repair_id", id))
		return false
	}
	repair.Deleted = true
	if err := s.repairs.Save(ctx, repair); err != nil {
		s.logger.Error("Soft delete: save failed", zap.Int64("repair_id", id), zap.Error(err))
		return false
	}
	return true
}

func (s *repairService) HardDelete(ctx context.Context, id int64) error {
	if err := s.repairs.Delete(ctx, id); err != nil {
		return fmt.Errorf("repair %d: %w", id, err)
	}
	s.logger.Info("Repair hard-deleted", zap.Int64("repair_id", id))
	return nil
}
