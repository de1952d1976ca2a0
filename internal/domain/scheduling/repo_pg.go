package scheduling

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

var appointmentConstraints = map[string]db.Constraint{
	"appointment_patient_fk":   {Field: "patient", Message: "Patient does not exist."},
	"appointment_doctor_fk":    {Field: "doctor", Message: "Doctor does not exist."},
	"appointment_status_check": {Field: "status", Message: "Invalid appointment status."},
}

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const apptCols = `id, patient_id, doctor_id, date, reason, status`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Reason, &a.Status); err != nil {
		return nil, err
	}
	a.Date = a.Date.UTC()
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (`+apptCols+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Reason, a.Status)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", db.TranslateError(err, appointmentConstraints))
	}
	return nil
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("appointment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET patient_id = $2, doctor_id = $3, date = $4, reason = $5, status = $6
		WHERE id = $1`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Reason, a.Status)
	if err != nil {
		return fmt.Errorf("update appointment: %w", db.TranslateError(err, appointmentConstraints))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment", a.ID)
	}
	return nil
}

// Delete removes the appointment and its billing.
func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment", id)
	}
	return nil
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+` FROM appointment ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Appointment, error) {
		return scanAppointment(row)
	})
}

func (r *appointmentRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM appointment WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
