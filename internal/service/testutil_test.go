package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/repository"
)

type fixture struct {
	store      *repository.MemoryStore
	owners     OwnerService
	properties PropertyService
	repairs    RepairService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	logger := zap.NewNop()
	owners := NewOwnerService(store.Owners(), logger)
	properties := NewPropertyService(store.Properties(), owners, logger)
	repairs := NewRepairService(store.Repairs(), store.Properties(), logger)
	return &fixture{store: store, owners: owners, properties: properties, repairs: repairs}
}

func (f *fixture) createOwner(t *testing.T, taxID, email string) *domain.Owner {
	t.Helper()
	owner, err := f.owners.Create(context.Background(), CreateOwnerRequest{
		TaxID:       taxID,
		Name:        "Maria",
		Surname:     "Papadopoulou",
		Address:     "12 Ermou St",
		PhoneNumber: "2101234567",
		Email:       email,
		Password:    "longenough",
	})
	require.NoError(t, err)
	return owner
}

func (f *fixture) createProperty(t *testing.T, parcelID, ownerTaxID string) *domain.Property {
	t.Helper()
	property, err := f.properties.Create(context.Background(), CreatePropertyRequest{
		ParcelID:         parcelID,
		PropertyAddress:  "12 Ermou St",
		ConstructionYear: 2020,
		PropertyType:     domain.PropertyTypeDetachedHouse,
		OwnerTaxID:       ownerTaxID,
	})
	require.NoError(t, err)
	return property
}

func (f *fixture) createRepair(t *testing.T, propertyID int64) *domain.Repair {
	t.Helper()
	start := domain.NewDateTime(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	end := domain.NewDateTime(time.Date(2026, 4, 3, 17, 0, 0, 0, time.UTC))
	repair, err := f.repairs.Create(context.Background(), CreateRepairRequest{
		PropertyID:         propertyID,
		RepairType:         domain.RepairTypePlumbing,
		Description:        "leak",
		ScheduledStartDate: start,
		ScheduledEndDate:   end,
		ProposedCost:       100.00,
	})
	require.NoError(t, err)
	return repair
}
