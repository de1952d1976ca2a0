package clinical

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

var medicalRecordConstraints = map[string]db.Constraint{
	"medical_record_patient_fk": {Field: "patient", Message: "Patient does not exist."},
	"medical_record_doctor_fk":  {Field: "doctor", Message: "Doctor does not exist."},
}

type medicalRecordRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalRecordRepoPG(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepoPG{pool: pool}
}

func (r *medicalRecordRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const medicalRecordCols = `id, patient_id, doctor_id, diagnosis, treatment, created_at`

func scanMedicalRecord(row pgx.Row) (*MedicalRecord, error) {
	var m MedicalRecord
	err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.Diagnosis, &m.Treatment, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}

func (r *medicalRecordRepoPG) Create(ctx context.Context, m *MedicalRecord) error {
	m.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_record (id, patient_id, doctor_id, diagnosis, treatment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		m.ID, m.PatientID, m.DoctorID, m.Diagnosis, m.Treatment).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert medical record: %w", db.TranslateError(err, medicalRecordConstraints))
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return nil
}

func (r *medicalRecordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	m, err := scanMedicalRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicalRecordCols+` FROM medical_record WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("medical record", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get medical record: %w", err)
	}
	return m, nil
}

// Update never touches created_at.
func (r *medicalRecordRepoPG) Update(ctx context.Context, m *MedicalRecord) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_record SET patient_id = $2, doctor_id = $3, diagnosis = $4, treatment = $5
		WHERE id = $1`,
		m.ID, m.PatientID, m.DoctorID, m.Diagnosis, m.Treatment)
	if err != nil {
		return fmt.Errorf("update medical record: %w", db.TranslateError(err, medicalRecordConstraints))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("medical record", m.ID)
	}
	return nil
}

func (r *medicalRecordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medical_record WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medical record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("medical record", id)
	}
	return nil
}

func (r *medicalRecordRepoPG) List(ctx context.Context) ([]*MedicalRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medicalRecordCols+` FROM medical_record ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*MedicalRecord, error) {
		return scanMedicalRecord(row)
	})
}
