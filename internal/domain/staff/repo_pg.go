package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospital/hms/internal/platform/apperr"
	"github.com/hospital/hms/internal/platform/db"
)

// =========== Department Repository ===========

var departmentConstraints = map[string]db.Constraint{
	"department_name_key":    {Field: "name", Message: MsgDepartmentNameUnique},
	"department_name_format": {Field: "name", Message: MsgDepartmentNameLetters},
}

type departmentRepoPG struct{ pool *pgxpool.Pool }

func NewDepartmentRepoPG(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepoPG{pool: pool}
}

func (r *departmentRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const deptCols = `id, name, description`

func scanDepartment(row pgx.Row) (*Department, error) {
	var d Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepoPG) Create(ctx context.Context, d *Department) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO department (`+deptCols+`) VALUES ($1, $2, $3)`,
		d.ID, d.Name, d.Description)
	if err != nil {
		return fmt.Errorf("insert department: %w", db.TranslateError(err, departmentConstraints))
	}
	return nil
}

func (r *departmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	d, err := scanDepartment(r.conn(ctx).QueryRow(ctx, `SELECT `+deptCols+` FROM department WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("department", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

func (r *departmentRepoPG) Update(ctx context.Context, d *Department) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE department SET name = $2, description = $3 WHERE id = $1`,
		d.ID, d.Name, d.Description)
	if err != nil {
		return fmt.Errorf("update department: %w", db.TranslateError(err, departmentConstraints))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("department", d.ID)
	}
	return nil
}

// Delete removes the department; its doctors go with it through the
// ON DELETE CASCADE foreign key.
func (r *departmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM department WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("department", id)
	}
	return nil
}

func (r *departmentRepoPG) List(ctx context.Context) ([]*Department, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+deptCols+` FROM department ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Department, error) {
		return scanDepartment(row)
	})
}

func (r *departmentRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM department WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *departmentRepoPG) NameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM department WHERE name = $1 AND id <> $2)`, name, exclude).Scan(&ok)
	return ok, err
}

// =========== Doctor Repository ===========

var doctorConstraints = map[string]db.Constraint{
	"doctor_email_key":     {Field: "email", Message: MsgDoctorEmailUnique},
	"doctor_department_fk": {Field: "department", Message: "Department does not exist."},
}

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const doctorCols = `id, first_name, last_name, specialization, phone_number, email, department_id`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Specialization,
		&d.PhoneNumber, &d.Email, &d.DepartmentID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (`+doctorCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.FirstName, d.LastName, d.Specialization, d.PhoneNumber, d.Email, d.DepartmentID)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", db.TranslateError(err, doctorConstraints))
	}
	return nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("doctor", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET first_name = $2, last_name = $3, specialization = $4,
			phone_number = $5, email = $6, department_id = $7
		WHERE id = $1`,
		d.ID, d.FirstName, d.LastName, d.Specialization, d.PhoneNumber, d.Email, d.DepartmentID)
	if err != nil {
		return fmt.Errorf("update doctor: %w", db.TranslateError(err, doctorConstraints))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor", d.ID)
	}
	return nil
}

// Delete removes the doctor. Appointments (and their billings) cascade;
// medical records keep their row with doctor_id set to NULL.
func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor", id)
	}
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Doctor, error) {
		return scanDoctor(row)
	})
}

func (r *doctorRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM doctor WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *doctorRepoPG) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctor WHERE email = $1 AND id <> $2)`, email, exclude).Scan(&ok)
	return ok, err
}
