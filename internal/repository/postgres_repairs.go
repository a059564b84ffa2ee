package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apostol1s/technico-web/internal/domain"
)

type PostgresRepairsRepository struct {
	db *sql.DB
}

func NewPostgresRepairsRepository(db *sql.DB) *PostgresRepairsRepository {
	return &PostgresRepairsRepository{db: db}
}

const repairColumns = `
	id, repair_type, short_description, submission_date, description,
	scheduled_start_date, scheduled_end_date, proposed_cost, acceptance_status,
	repair_status, repair_address, actual_start_date, actual_end_date, deleted, property_id
`

func scanRepair(row interface{ Scan(...any) error }) (*domain.Repair, error) {
	rp := &domain.Repair{}
	var shortDesc, address sql.NullString
	var submission, schedStart, schedEnd, actualStart, actualEnd sql.NullTime
	var acceptance sql.NullBool
	err := row.Scan(&rp.ID, &rp.RepairType, &shortDesc, &submission, &rp.Description,
		&schedStart, &schedEnd, &rp.ProposedCost, &acceptance,
		&rp.RepairStatus, &address, &actualStart, &actualEnd, &rp.Deleted, &rp.PropertyID)
	if err != nil {
		return nil, err
	}
	rp.ShortDescription = shortDesc.String
	rp.RepairAddress = address.String
	rp.SubmissionDate = nullTimeToDateTime(submission)
	rp.ScheduledStartDate = nullTimeToDateTime(schedStart)
	rp.ScheduledEndDate = nullTimeToDateTime(schedEnd)
	rp.ActualStartDate = nullTimeToDateTime(actualStart)
	rp.ActualEndDate = nullTimeToDateTime(actualEnd)
	if acceptance.Valid {
		v := acceptance.Bool
		rp.AcceptanceStatus = &v
	}
	return rp, nil
}

func nullTimeToDateTime(t sql.NullTime) *domain.DateTime {
	if !t.Valid {
		return nil
	}
	return domain.NewDateTime(t.Time)
}

func dateTimeToNullTime(d *domain.DateTime) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

func boolPtrToNullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func (r *PostgresRepairsRepository) Create(ctx context.Context, repair *domain.Repair) (int64, error) {
	query := `
		INSERT INTO repairs (
			repair_type, short_description, submission_date, description,
			scheduled_start_date, scheduled_end_date, proposed_cost, acceptance_status,
			repair_status, repair_address, actual_start_date, actual_end_date, deleted, property_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		repair.RepairType, repair.ShortDescription, dateTimeToNullTime(repair.SubmissionDate),
		repair.Description, dateTimeToNullTime(repair.ScheduledStartDate),
		dateTimeToNullTime(repair.ScheduledEndDate), repair.ProposedCost,
		boolPtrToNullBool(repair.AcceptanceStatus), repair.RepairStatus, repair.RepairAddress,
		dateTimeToNullTime(repair.ActualStartDate), dateTimeToNullTime(repair.ActualEndDate),
		repair.Deleted, repair.PropertyID,
	).Scan(&repair.ID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return repair.ID, nil
}

func (r *PostgresRepairsRepository) Save(ctx context.Context, repair *domain.Repair) error {
	query := `
		UPDATE repairs
		SET repair_type = $2, short_description = $3, submission_date = $4, description = $5,
		    scheduled_start_date = $6, scheduled_end_date = $7, proposed_cost = $8,
		    acceptance_status = $9, repair_status = $10, repair_address = $11,
		    actual_start_date = $12, actual_end_date = $13, deleted = $14
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		repair.ID, repair.RepairType, repair.ShortDescription,
		dateTimeToNullTime(repair.SubmissionDate), repair.Description,
		dateTimeToNullTime(repair.ScheduledStartDate), dateTimeToNullTime(repair.ScheduledEndDate),
		repair.ProposedCost, boolPtrToNullBool(repair.AcceptanceStatus),
		repair.RepairStatus, repair.RepairAddress,
		dateTimeToNullTime(repair.ActualStartDate), dateTimeToNullTime(repair.ActualEndDate),
		repair.Deleted,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepairsRepository) FindByID(ctx context.Context, id int64) (*domain.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE id = $1`
	rp, err := scanRepair(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rp, nil
}

func (r *PostgresRepairsRepository) FindByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Repair, error) {
	return r.findMany(ctx, `WHERE property_id = $1 ORDER BY id`, propertyID)
}

func (r *PostgresRepairsRepository) FindByDate(ctx context.Context, at time.Time) ([]*domain.Repair, error) {
	return r.findMany(ctx,
		`WHERE scheduled_start_date <= $1 AND scheduled_end_date >= $1 ORDER BY id`, at)
}

func (r *PostgresRepairsRepository) FindAll(ctx context.Context) ([]*domain.Repair, error) {
	return r.findMany(ctx, `ORDER BY id`)
}

func (r *PostgresRepairsRepository) findMany(ctx context.Context, tail string, args ...any) ([]*domain.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs ` + tail
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*domain.Repair{}
	for rows.Next() {
		rp, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

func (r *PostgresRepairsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM repairs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
