package clinical

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/validation"
)

// MedicalRecord maps to the medical_record table. DoctorID is nil once the
// authoring doctor has been removed.
type MedicalRecord struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient"`
	DoctorID  *uuid.UUID `db:"doctor_id" json:"doctor"`
	Diagnosis string     `db:"diagnosis" json:"diagnosis"`
	Treatment string     `db:"treatment" json:"treatment"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// OptionalID distinguishes an absent key from an explicit null.
type OptionalID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (OptionalID) InvalidMessage() string { return validation.UUIDMessage }

// MedicalRecordInput is the writable subset of MedicalRecord. created_at is
// assigned by the store and never read from a request.
type MedicalRecordInput struct {
	Patient   *uuid.UUID `json:"patient"`
	Doctor    OptionalID `json:"doctor"`
	Diagnosis *string    `json:"diagnosis"`
	Treatment *string    `json:"treatment"`
}

func (in MedicalRecordInput) Apply(r *MedicalRecord) {
	if in.Patient != nil {
		r.PatientID = *in.Patient
	}
	if in.Doctor.Set {
		r.DoctorID = in.Doctor.Value
	}
	if in.Diagnosis != nil {
		r.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Treatment != nil {
		r.Treatment = strings.TrimSpace(*in.Treatment)
	}
}
