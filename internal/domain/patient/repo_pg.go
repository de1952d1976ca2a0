package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospital/hms/internal/platform/apperr"
	"github.com/hospital/hms/internal/platform/db"
)

var patientConstraints = map[string]db.Constraint{
	"patient_email_key": {Field: "email", Message: MsgPatientEmailUnique},
}

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const patientCols = `id, first_name, last_name, date_of_birth, phone_number, email, address`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var dob time.Time
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &dob, &p.PhoneNumber, &p.Email, &p.Address)
	if err != nil {
		return nil, err
	}
	p.DateOfBirth = Date{dob}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (`+patientCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth.Time, p.PhoneNumber, p.Email, p.Address)
	if err != nil {
		return fmt.Errorf("insert patient: %w", db.TranslateError(err, patientConstraints))
	}
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("patient", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name = $2, last_name = $3, date_of_birth = $4,
			phone_number = $5, email = $6, address = $7
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth.Time, p.PhoneNumber, p.Email, p.Address)
	if err != nil {
		return fmt.Errorf("update patient: %w", db.TranslateError(err, patientConstraints))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient", p.ID)
	}
	return nil
}

// Delete removes the patient together with its appointments, medical
// records and billings (ON DELETE CASCADE).
func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient", id)
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Patient, error) {
		return scanPatient(row)
	})
}

func (r *patientRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *patientRepoPG) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patient WHERE email = $1 AND id <> $2)`, email, exclude).Scan(&ok)
	return ok, err
}
