// Package memstore is a mutex-guarded in-memory backend implementing every
// repository interface with the same uniqueness, foreign-key and cascade
// rules as the PostgreSQL schema. Records are copied on the way in and out.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/billing"
	"github.com/hospital/hms/internal/domain/clinical"
	"github.com/hospital/hms/internal/domain/patient"
	"github.com/hospital/hms/internal/domain/scheduling"
	"github.com/hospital/hms/internal/domain/staff"
	"github.com/hospital/hms/internal/platform/apperr"
)

type contextKey string

const unitKey contextKey = "memstore_unit"

// Store holds every table. mu guards the maps; writer serialises units of
// work so that validation and the following write see the same state.
type Store struct {
	mu     sync.RWMutex
	writer sync.Mutex
	now    func() time.Time

	departments  map[uuid.UUID]staff.Department
	doctors      map[uuid.UUID]staff.Doctor
	patients     map[uuid.UUID]patient.Patient
	appointments map[uuid.UUID]scheduling.Appointment
	records      map[uuid.UUID]clinical.MedicalRecord
	billings     map[uuid.UUID]billing.Billing
}

func New() *Store {
	return &Store{
		now:          time.Now,
		departments:  make(map[uuid.UUID]staff.Department),
		doctors:      make(map[uuid.UUID]staff.Doctor),
		patients:     make(map[uuid.UUID]patient.Patient),
		appointments: make(map[uuid.UUID]scheduling.Appointment),
		records:      make(map[uuid.UUID]clinical.MedicalRecord),
		billings:     make(map[uuid.UUID]billing.Billing),
	}
}

// SetClock replaces the clock used for created_at and billing_date.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// timestamp mirrors the microsecond precision of TIMESTAMPTZ.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// InTx runs fn as one unit of work. Nested calls join the outer unit.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(unitKey) != nil {
		return fn(ctx)
	}
	s.writer.Lock()
	defer s.writer.Unlock()
	return fn(context.WithValue(ctx, unitKey, true))
}

func (s *Store) Departments() staff.DepartmentRepository { return departmentRepo{s} }

func (s *Store) Doctors() staff.DoctorRepository { return doctorRepo{s} }

func (s *Store) Patients() patient.PatientRepository { return patientRepo{s} }

func (s *Store) Appointments() scheduling.AppointmentRepository { return appointmentRepo{s} }

func (s *Store) MedicalRecords() clinical.MedicalRecordRepository { return medicalRecordRepo{s} }

func (s *Store) Billings() billing.BillingRepository { return billingRepo{s} }

func missing(field, resource string) error {
	return &apperr.ConstraintError{Field: field, Message: resource + " does not exist."}
}

func duplicate(field, message string) error {
	return &apperr.ConstraintError{Field: field, Message: message}
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
