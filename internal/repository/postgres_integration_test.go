//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apostol1s/technico-web/internal/config"
	"github.com/apostol1s/technico-web/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.Load()
	db, err := NewPostgresDB(&cfg.Database)
	if err != nil {
		t.Skipf("Skipping integration test: database not available: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM repairs`)
		_, _ = db.Exec(`DELETE FROM properties`)
		_, _ = db.Exec(`DELETE FROM owners`)
		db.Close()
	})
	return db
}

func seedHierarchy(t *testing.T, db *sql.DB) (*domain.Owner, *domain.Property, *domain.Repair) {
	t.Helper()
	ctx := context.Background()
	owners := NewPostgresOwnersRepository(db)
	properties := NewPostgresPropertiesRepository(db)
	repairs := NewPostgresRepairsRepository(db)

	owner := &domain.Owner{
		TaxID: "123456789", Name: "Maria", Surname: "Papadopoulou",
		Address: "12 Ermou St", PhoneNumber: "2101234567",
		Email: "a@b.com", Password: "longenough",
	}
	_, err := owners.Create(ctx, owner)
	require.NoError(t, err)

	property := &domain.Property{
		ParcelID: "12345678901234567890", PropertyAddress: "12 Ermou St",
		ConstructionYear: 2020, PropertyType: domain.PropertyTypeDetachedHouse,
		OwnerID: owner.ID,
	}
	_, err = properties.Create(ctx, property)
	require.NoError(t, err)

	repair := &domain.Repair{
		RepairType:     domain.RepairTypePlumbing,
		Description:    "leak",
		SubmissionDate: domain.NewDateTime(time.Now().Truncate(time.Second)),
		RepairStatus:   domain.RepairStatusPending,
		RepairAddress:  property.PropertyAddress,
		ProposedCost:   100,
		PropertyID:     property.ID,
	}
	_, err = repairs.Create(ctx, repair)
	require.NoError(t, err)

	return owner, property, repair
}

func TestPostgresOwnerRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owners := NewPostgresOwnersRepository(db)
	owner, _, _ := seedHierarchy(t, db)

	got, err := owners.FindByTaxID(ctx, owner.TaxID)
	require.NoError(t, err)
	require.Equal(t, owner.Email, got.Email)

	got.Address = "5 Athinas St"
	require.NoError(t, owners.Save(ctx, got))

	again, err := owners.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "5 Athinas St", again.Address)

	_, err = owners.FindByTaxID(ctx, "000000000")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresUniqueConstraints(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owners := NewPostgresOwnersRepository(db)
	seedHierarchy(t, db)

	dup := &domain.Owner{
		TaxID: "123456789", Name: "X", Surname: "Y",
		Email: "other@b.com", Password: "longenough",
	}
	_, err := owners.Create(ctx, dup)
	require.Error(t, err)
}

func TestPostgresPropertyJoinResolvesOwnerTaxID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	properties := NewPostgresPropertiesRepository(db)
	owner, property, _ := seedHierarchy(t, db)

	got, err := properties.FindByParcelID(ctx, property.ParcelID)
	require.NoError(t, err)
	require.Equal(t, owner.TaxID, got.OwnerTaxID)

	list, err := properties.FindByOwnerTaxID(ctx, owner.TaxID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestPostgresRepairFindByDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repairs := NewPostgresRepairsRepository(db)
	_, _, repair := seedHierarchy(t, db)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 3, 17, 0, 0, 0, time.UTC)
	repair.ScheduledStartDate = domain.NewDateTime(start)
	repair.ScheduledEndDate = domain.NewDateTime(end)
	require.NoError(t, repairs.Save(ctx, repair))

	inside, err := repairs.FindByDate(ctx, time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, inside, 1)

	outside, err := repairs.FindByDate(ctx, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, outside)
}

func TestPostgresOwnerDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owners := NewPostgresOwnersRepository(db)
	properties := NewPostgresPropertiesRepository(db)
	repairs := NewPostgresRepairsRepository(db)
	owner, property, repair := seedHierarchy(t, db)

	require.NoError(t, owners.DeleteCascade(ctx, owner.ID))

	_, err := owners.FindByID(ctx, owner.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = properties.FindByID(ctx, property.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repairs.FindByID(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresPropertyDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owners := NewPostgresOwnersRepository(db)
	properties := NewPostgresPropertiesRepository(db)
	repairs := NewPostgresRepairsRepository(db)
	owner, property, repair := seedHierarchy(t, db)

	require.NoError(t, properties.DeleteCascade(ctx, property.ID))

	_, err := repairs.FindByID(ctx, repair.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = owners.FindByID(ctx, owner.ID)
	require.NoError(t, err)
}
