package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apostol1s/technico-web/internal/domain"
)

func TestOwnerCreate(t *testing.T) {
	f := newFixture(t)
	owner := f.createOwner(t, "123456789", "a@b.com")
	require.NotZero(t, owner.ID)
	require.False(t, owner.Deleted)
}

func TestOwnerCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.owners.Create(ctx, CreateOwnerRequest{
		TaxID: "short", Name: "A", Surname: "B",
		PhoneNumber: "123", Email: "a@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.owners.Create(ctx, CreateOwnerRequest{
		TaxID: "123456789", Name: "A", Surname: "B",
		PhoneNumber: "123", Email: "a@b.com", Password: "short",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestOwnerCreateDuplicateNaturalKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createOwner(t, "123456789", "a@b.com")

	_, err := f.owners.Create(ctx, CreateOwnerRequest{
		TaxID: "123456789", Name: "A", Surname: "B",
		PhoneNumber: "123", Email: "other@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.owners.Create(ctx, CreateOwnerRequest{
		TaxID: "987654321", Name: "A", Surname: "B",
		PhoneNumber: "123", Email: "a@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestOwnerCreateDuplicateAgainstSoftDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	require.True(t, f.owners.SoftDelete(ctx, owner.ID))

	// Natural keys stay reserved even after a soft delete.
	_, err := f.owners.Create(ctx, CreateOwnerRequest{
		TaxID: "123456789", Name: "A", Surname: "B",
		PhoneNumber: "123", Email: "new@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestOwnerUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")

	updated, err := f.owners.Update(ctx, UpdateOwnerRequest{
		ID:          owner.ID,
		Address:     "5 Athinas St",
		PhoneNumber: "2109876543",
		Email:       "new@b.com",
		Password:    "alsolongenough",
	})
	require.NoError(t, err)
	require.Equal(t, "5 Athinas St", updated.Address)
	require.Equal(t, "new@b.com", updated.Email)
	// Immutable fields survive the update untouched.
	require.Equal(t, "123456789", updated.TaxID)
	require.Equal(t, "Maria", updated.Name)
}

func TestOwnerUpdateEmailConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createOwner(t, "123456789", "a@b.com")
	other := f.createOwner(t, "987654321", "c@d.com")

	_, err := f.owners.Update(ctx, UpdateOwnerRequest{
		ID: other.ID, Address: "x", PhoneNumber: "123",
		Email: "a@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Writing the same email back is not a conflict.
	_, err = f.owners.Update(ctx, UpdateOwnerRequest{
		ID: other.ID, Address: "x", PhoneNumber: "123",
		Email: "c@d.com", Password: "longenough",
	})
	require.NoError(t, err)
}

func TestOwnerUpdateSoftDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	require.True(t, f.owners.SoftDelete(ctx, owner.ID))

	_, err := f.owners.Update(ctx, UpdateOwnerRequest{
		ID: owner.ID, Address: "x", PhoneNumber: "123",
		Email: "a@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrState)

	// Fields are unchanged after the rejected update.
	current, err := f.owners.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "12 Ermou St", current.Address)
}

func TestOwnerUpdateNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.owners.Update(context.Background(), UpdateOwnerRequest{
		ID: 42, Address: "x", PhoneNumber: "123",
		Email: "a@b.com", Password: "longenough",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOwnerSoftDeleteContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")

	require.False(t, f.owners.SoftDelete(ctx, 42))
	require.True(t, f.owners.SoftDelete(ctx, owner.ID))
	// Repeating the soft delete still reports true.
	require.True(t, f.owners.SoftDelete(ctx, owner.ID))

	// Lookups still return the soft-deleted row.
	got, err := f.owners.FindByTaxID(ctx, "123456789")
	require.NoError(t, err)
	require.True(t, got.Deleted)
}

func TestOwnerHardDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")
	property := f.createProperty(t, "12345678901234567890", owner.TaxID)
	repair := f.createRepair(t, property.ID)

	require.NoError(t, f.owners.HardDelete(ctx, owner.ID))

	_, err := f.owners.FindByID(ctx, owner.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.properties.FindByParcelID(ctx, property.ParcelID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.repairs.FindByID(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, f.owners.HardDelete(ctx, owner.ID), domain.ErrNotFound)
}

func TestOwnerVerifyCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createOwner(t, "123456789", "a@b.com")

	got, err := f.owners.VerifyCredentials(ctx, "a@b.com", "longenough")
	require.NoError(t, err)
	require.Equal(t, owner.ID, got.ID)

	_, err = f.owners.VerifyCredentials(ctx, "a@b.com", "wrongpassword")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.owners.VerifyCredentials(ctx, "", "longenough")
	require.ErrorIs(t, err, domain.ErrValidation)

	// Soft-deleted owners cannot sign in.
	require.True(t, f.owners.SoftDelete(ctx, owner.ID))
	_, err = f.owners.VerifyCredentials(ctx, "a@b.com", "longenough")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
