package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apostol1s/technico-web/internal/domain"
)

func TestRepairCreate(t *testing.T) {
	f := newFixture(t)
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	require.Equal(t, domain.RepairStatusPending, repair.RepairStatus)
	require.Equal(t, property.PropertyAddress, repair.RepairAddress)
	require.NotNil(t, repair.SubmissionDate)
	require.Nil(t, repair.AcceptanceStatus)
}

func TestRepairAddressIsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	// Editing the property afterwards does not touch the repair address.
	_, err := f.properties.Update(ctx, UpdatePropertyRequest{
		ID: property.ID, PropertyAddress: "5 Athinas St",
		ConstructionYear: 2020, PropertyType: domain.PropertyTypeDetachedHouse,
	})
	require.NoError(t, err)

	got, err := f.repairs.FindByID(ctx, repair.ID)
	require.NoError(t, err)
	require.Equal(t, "12 Ermou St", got.RepairAddress)
}

func TestRepairCreateInvalidPropertyReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repairs.Create(ctx, CreateRepairRequest{
		PropertyID: 42, RepairType: domain.RepairTypePlumbing, Description: "leak",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	require.NoError(t, f.properties.SoftDelete(ctx, property.ID))

	_, err = f.repairs.Create(ctx, CreateRepairRequest{
		PropertyID: property.ID, RepairType: domain.RepairTypePlumbing, Description: "leak",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepairCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)

	_, err := f.repairs.Create(ctx, CreateRepairRequest{
		PropertyID: property.ID, RepairType: domain.RepairType("GARDENING"), Description: "leak",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.repairs.Create(ctx, CreateRepairRequest{
		PropertyID: property.ID, RepairType: domain.RepairTypePlumbing, Description: "  ",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.repairs.Create(ctx, CreateRepairRequest{
		PropertyID: property.ID, RepairType: domain.RepairTypePlumbing,
		Description: "leak", ProposedCost: -1,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	future := domain.NewDateTime(time.Now().Add(48 * time.Hour))
	_, err = f.repairs.Create(ctx, CreateRepairRequest{
		PropertyID: property.ID, RepairType: domain.RepairTypePlumbing,
		Description: "leak", SubmissionDate: future,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepairUpdateAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	updated, err := f.repairs.UpdateAdmin(ctx, UpdateRepairAdminRequest{
		ID:            repair.ID,
		RepairType:    domain.RepairTypePainting,
		Description:   "repaint the hallway",
		RepairAddress: "somewhere else",
		RepairStatus:  domain.RepairStatusInProgress,
		ProposedCost:  250,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RepairStatusInProgress, updated.RepairStatus)
	require.Equal(t, 250.0, updated.ProposedCost)
	require.Equal(t, "somewhere else", updated.RepairAddress)
}

func TestRepairUpdateAdminIllegalTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	// PENDING cannot jump straight to COMPLETE.
	_, err := f.repairs.UpdateAdmin(ctx, UpdateRepairAdminRequest{
		ID: repair.ID, RepairType: domain.RepairTypePlumbing,
		Description: "leak", RepairStatus: domain.RepairStatusComplete,
	})
	require.ErrorIs(t, err, domain.ErrState)

	// Writing the current status back is fine.
	_, err = f.repairs.UpdateAdmin(ctx, UpdateRepairAdminRequest{
		ID: repair.ID, RepairType: domain.RepairTypePlumbing,
		Description: "leak", RepairStatus: domain.RepairStatusPending,
	})
	require.NoError(t, err)

	// Terminal states are immutable.
	_, err = f.repairs.Decline(ctx, repair.ID)
	require.NoError(t, err)
	_, err = f.repairs.UpdateAdmin(ctx, UpdateRepairAdminRequest{
		ID: repair.ID, RepairType: domain.RepairTypePlumbing,
		Description: "leak", RepairStatus: domain.RepairStatusInProgress,
	})
	require.ErrorIs(t, err, domain.ErrState)
}

func TestRepairUpdateOwnerNarrowFieldSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	updated, err := f.repairs.UpdateOwner(ctx, UpdateRepairOwnerRequest{
		ID:            repair.ID,
		RepairType:    domain.RepairTypeFrames,
		Description:   "window frames",
		RepairAddress: "back entrance",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RepairTypeFrames, updated.RepairType)
	// Status and cost are out of reach for the owner path.
	require.Equal(t, domain.RepairStatusPending, updated.RepairStatus)
	require.Equal(t, repair.ProposedCost, updated.ProposedCost)
}

func TestRepairUpdateSoftDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)
	require.True(t, f.repairs.SoftDelete(ctx, repair.ID))

	_, err := f.repairs.UpdateAdmin(ctx, UpdateRepairAdminRequest{
		ID: repair.ID, RepairType: domain.RepairTypePlumbing,
		Description: "leak", RepairStatus: domain.RepairStatusPending,
	})
	require.ErrorIs(t, err, domain.ErrState)

	_, err = f.repairs.UpdateOwner(ctx, UpdateRepairOwnerRequest{
		ID: repair.ID, RepairType: domain.RepairTypePlumbing, Description: "leak",
	})
	require.ErrorIs(t, err, domain.ErrState)
}

func TestRepairLifecycleTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	// Complete requires an in-progress repair.
	_, err := f.repairs.Complete(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrState)

	accepted, err := f.repairs.Accept(ctx, repair.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RepairStatusInProgress, accepted.RepairStatus)
	require.NotNil(t, accepted.AcceptanceStatus)
	require.True(t, *accepted.AcceptanceStatus)

	started, err := f.repairs.Start(ctx, repair.ID)
	require.NoError(t, err)
	require.NotNil(t, started.ActualStartDate)

	completed, err := f.repairs.Complete(ctx, repair.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RepairStatusComplete, completed.RepairStatus)
	require.NotNil(t, completed.ActualEndDate)

	// COMPLETE is terminal.
	_, err = f.repairs.Decline(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrState)
}

func TestRepairDecline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	declined, err := f.repairs.Decline(ctx, repair.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RepairStatusDeclined, declined.RepairStatus)
	require.NotNil(t, declined.AcceptanceStatus)
	require.False(t, *declined.AcceptanceStatus)

	_, err = f.repairs.Accept(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrState)
}

func TestRepairFindByOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	p1 := f.createProperty(t, "11111111111111111111", owner.TaxID)
	p2 := f.createProperty(t, "22222222222222222222", owner.TaxID)
	f.createRepair(t, p1.ID)
	r2 := f.createRepair(t, p2.ID)

	repairs, err := f.repairs.FindByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, repairs, 2)

	// Repairs under soft-deleted properties drop out of the flattened view.
	require.NoError(t, f.properties.SoftDelete(ctx, p1.ID))
	repairs, err = f.repairs.FindByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	require.Equal(t, r2.ID, repairs[0].ID)

	require.NoError(t, f.properties.SoftDelete(ctx, p2.ID))
	_, err = f.repairs.FindByOwner(ctx, owner.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepairFindByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	inside := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	repairs, err := f.repairs.FindByDate(ctx, inside)
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	require.Equal(t, repair.ID, repairs[0].ID)

	outside := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	repairs, err = f.repairs.FindByDate(ctx, outside)
	require.NoError(t, err)
	require.Empty(t, repairs)
}

func TestRepairFindByPropertyID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)
	deleted := f.createRepair(t, property.ID)
	require.True(t, f.repairs.SoftDelete(ctx, deleted.ID))

	repairs, err := f.repairs.FindByPropertyID(ctx, property.ID)
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	require.Equal(t, repair.ID, repairs[0].ID)

	_, err = f.repairs.FindByPropertyID(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepairFindAllEmptyIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.repairs.FindAll(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepairSoftDeleteContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	require.False(t, f.repairs.SoftDelete(ctx, 42))
	require.True(t, f.repairs.SoftDelete(ctx, repair.ID))
	require.True(t, f.repairs.SoftDelete(ctx, repair.ID))
}

func TestRepairHardDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	require.NoError(t, f.repairs.HardDelete(ctx, repair.ID))
	_, err := f.repairs.FindByID(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, f.repairs.HardDelete(ctx, repair.ID), domain.ErrNotFound)

	// The property itself is untouched.
	_, err = f.properties.FindByID(ctx, property.ID)
	require.NoError(t, err)
}
