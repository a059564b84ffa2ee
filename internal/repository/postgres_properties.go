package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apostol1s/technico-web/internal/domain"
)

type PostgresPropertiesRepository struct {
	db *sql.DB
}

func NewPostgresPropertiesRepository(db *sql.DB) *PostgresPropertiesRepository {
	return &PostgresPropertiesRepository{db: db}
}

// Every read joins owners so OwnerTaxID is always populated.
const propertySelect = `
	SELECT p.id, p.parcel_id, p.property_address, p.construction_year,
	       p.property_type, p.deleted, p.owner_id, o.tax_id
	FROM properties p
	JOIN owners o ON o.id = p.owner_id
`

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	p := &domain.Property{}
	var address sql.NullString
	err := row.Scan(&p.ID, &p.ParcelID, &address, &p.ConstructionYear,
		&p.PropertyType, &p.Deleted, &p.OwnerID, &p.OwnerTaxID)
	if err != nil {
		return nil, err
	}
	p.PropertyAddress = address.String
	return p, nil
}

func (r *PostgresPropertiesRepository) Create(ctx context.Context, property *domain.Property) (int64, error) {
	query := `
		INSERT INTO properties (parcel_id, property_address, construction_year, property_type, deleted, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		property.ParcelID, property.PropertyAddress, property.ConstructionYear,
		property.PropertyType, property.Deleted, property.OwnerID,
	).Scan(&property.ID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return property.ID, nil
}

func (r *PostgresPropertiesRepository) Save(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET property_address = $2, construction_year = $3, property_type = $4, deleted = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		property.ID, property.PropertyAddress, property.ConstructionYear,
		property.PropertyType, property.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPropertiesRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.findOne(ctx, `WHERE p.id = $1`, id)
}

func (r *PostgresPropertiesRepository) FindByParcelID(ctx context.Context, parcelID string) (*domain.Property, error) {
	return r.findOne(ctx, `WHERE p.parcel_id = $1`, parcelID)
}

func (r *PostgresPropertiesRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, propertySelect+where, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresPropertiesRepository) FindByOwnerTaxID(ctx context.Context, taxID string) ([]*domain.Property, error) {
	return r.findMany(ctx, `WHERE o.tax_id = $1 ORDER BY p.id`, taxID)
}

func (r *PostgresPropertiesRepository) FindByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Property, error) {
	return r.findMany(ctx, `WHERE p.owner_id = $1 ORDER BY p.id`, ownerID)
}

func (r *PostgresPropertiesRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	return r.findMany(ctx, `ORDER BY p.id`)
}

func (r *PostgresPropertiesRepository) findMany(ctx context.Context, tail string, args ...any) ([]*domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, propertySelect+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteCascade removes the property and its repairs in one transaction.
func (r *PostgresPropertiesRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM repairs WHERE property_id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
