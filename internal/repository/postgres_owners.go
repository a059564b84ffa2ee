package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apostol1s/technico-web/internal/domain"
)

type PostgresOwnersRepository struct {
	db *sql.DB
}

func NewPostgresOwnersRepository(db *sql.DB) *PostgresOwnersRepository {
	return &PostgresOwnersRepository{db: db}
}

const ownerColumns = `id, tax_id, name, surname, address, phone_number, email, password, deleted`

func scanOwner(row interface{ Scan(...any) error }) (*domain.Owner, error) {
	o := &domain.Owner{}
	var address, phone sql.NullString
	err := row.Scan(&o.ID, &o.TaxID, &o.Name, &o.Surname, &address, &phone, &o.Email, &o.Password, &o.Deleted)
	if err != nil {
		return nil, err
	}
	o.Address = address.String
	o.PhoneNumber = phone.String
	return o, nil
}

func (r *PostgresOwnersRepository) Create(ctx context.Context, owner *domain.Owner) (int64, error) {
	query := `
		INSERT INTO owners (tax_id, name, surname, address, phone_number, email, password, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		owner.TaxID, owner.Name, owner.Surname, owner.Address,
		owner.PhoneNumber, owner.Email, owner.Password, owner.Deleted,
	).Scan(&owner.ID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return owner.ID, nil
}

func (r *PostgresOwnersRepository) Save(ctx context.Context, owner *domain.Owner) error {
	query := `
		UPDATE owners
		SET address = $2, phone_number = $3, email = $4, password = $5, deleted = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		owner.ID, owner.Address, owner.PhoneNumber, owner.Email, owner.Password, owner.Deleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresOwnersRepository) FindByID(ctx context.Context, id int64) (*domain.Owner, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresOwnersRepository) FindByTaxID(ctx context.Context, taxID string) (*domain.Owner, error) {
	return r.findOne(ctx, `WHERE tax_id = $1`, taxID)
}

func (r *PostgresOwnersRepository) FindByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

// FindByCredentials excludes soft-deleted owners: a deleted account must not
// be able to sign in.
func (r *PostgresOwnersRepository) FindByCredentials(ctx context.Context, email, password string) (*domain.Owner, error) {
	return r.findOne(ctx, `WHERE email = $1 AND password = $2 AND deleted = false`, email, password)
}

func (r *PostgresOwnersRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners ` + where
	o, err := scanOwner(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresOwnersRepository) FindAll(ctx context.Context) ([]*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*domain.Owner{}
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// DeleteCascade removes the owner and every dependent row in one transaction
// so a crash mid-sequence leaves no orphaned children.
func (r *PostgresOwnersRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM repairs WHERE property_id IN (SELECT id FROM properties WHERE owner_id = $1)`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE owner_id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
