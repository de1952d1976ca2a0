package billing

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

var billingConstraints = map[string]db.Constraint{
	"billing_appointment_key":      {Field: "appointment", Message: MsgAppointmentBilled},
	"billing_amount_min":           {Field: "amount", Message: "Ensure this value is greater than or equal to 0."},
	"billing_payment_status_check": {Field: "payment_status", Message: "Invalid payment status."},
	"billing_patient_fk":           {Field: "patient", Message: "Patient does not exist."},
	"billing_appointment_fk":       {Field: "appointment", Message: "Appointment does not exist."},
}

type billingRepoPG struct{ pool *pgxpool.Pool }

func NewBillingRepoPG(pool *pgxpool.Pool) BillingRepository {
	return &billingRepoPG{pool: pool}
}

func (r *billingRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const billingCols = `id, patient_id, appointment_id, amount, payment_status, billing_date`

func scanBilling(row pgx.Row) (*Billing, error) {
	var b Billing
	err := row.Scan(&b.ID, &b.PatientID, &b.AppointmentID, &b.Amount, &b.PaymentStatus, &b.BillingDate)
	if err != nil {
		return nil, err
	}
	b.BillingDate = b.BillingDate.UTC()
	return &b, nil
}

func (r *billingRepoPG) Create(ctx context.Context, b *Billing) error {
	b.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO billing (id, patient_id, appointment_id, amount, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING billing_date`,
		b.ID, b.PatientID, b.AppointmentID, b.Amount, b.PaymentStatus).Scan(&b.BillingDate)
	if err != nil {
		return fmt.Errorf("insert billing: %w", db.TranslateError(err, billingConstraints))
	}
	b.BillingDate = b.BillingDate.UTC()
	return nil
}

func (r *billingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Billing, error) {
	b, err := scanBilling(r.conn(ctx).QueryRow(ctx, `SELECT `+billingCols+` FROM billing WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("billing", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get billing: %w", err)
	}
	return b, nil
}

func (r *billingRepoPG) Update(ctx context.Context, b *Billing) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE billing SET patient_id = $2, appointment_id = $3, amount = $4, payment_status = $5
		WHERE id = $1`,
		b.ID, b.PatientID, b.AppointmentID, b.Amount, b.PaymentStatus)
	if err != nil {
		return fmt.Errorf("update billing: %w", db.TranslateError(err, billingConstraints))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("billing", b.ID)
	}
	return nil
}

func (r *billingRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM billing WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete billing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("billing", id)
	}
	return nil
}

func (r *billingRepoPG) List(ctx context.Context) ([]*Billing, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+billingCols+` FROM billing ORDER BY billing_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list billings: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Billing, error) {
		return scanBilling(row)
	})
}

func (r *billingRepoPG) AppointmentBilled(ctx context.Context, appointmentID, exclude uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM billing WHERE appointment_id = $1 AND id <> $2)`,
		appointmentID, exclude).Scan(&ok)
	return ok, err
}
