package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/db"
	"github.com/hospital/hms/internal/platform/validation"
)

type Service struct {
	appointments AppointmentRepository
	patients     validation.Exister
	doctors      validation.Exister
	tx           db.TxRunner
	now          func() time.Time
}

// NewService wires the appointment repository with the patient and doctor
// stores its references must resolve against.
func NewService(repo AppointmentRepository, patients, doctors validation.Exister, tx db.TxRunner) *Service {
	return &Service{appointments: repo, patients: patients, doctors: doctors, tx: tx, now: time.Now}
}

// SetClock replaces the clock used for the appointment date check.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// validate checks a against the rules for a new appointment (prev == nil) or
// for a change to prev. The date must not lie in the past only when it is
// set or moved, so that past appointments can still be closed.
func (s *Service) validate(a *Appointment, in AppointmentInput, partial bool, prev *Appointment) *validation.Validator {
	dateChanged := prev == nil || !a.Date.Equal(prev.Date)

	status := []validation.Rule{validation.OneOf(a.Status, Statuses...)}
	if prev != nil {
		status = append(status, validation.Predicate(
			fmt.Sprintf("Cannot change status from %q to %q.", prev.Status, a.Status),
			func() bool { return CanTransition(prev.Status, a.Status) },
		))
	}

	return validation.New().
		Field("patient",
			validation.Provided(partial || in.Patient != nil),
			validation.RequiredID(a.PatientID),
			validation.Exists(a.PatientID, s.patients),
		).
		Field("doctor",
			validation.Provided(partial || in.Doctor != nil),
			validation.RequiredID(a.DoctorID),
			validation.Exists(a.DoctorID, s.doctors),
		).
		Field("date",
			validation.Provided(partial || in.Date != nil),
			validation.Parses(in.Date, validation.ParseDateTime, validation.DateTimeFormatMessage),
			validation.RequiredTime(a.Date),
			validation.When(dateChanged, validation.NotPast(a.Date, s.now(), MsgAppointmentInPast)),
		).
		Field("reason",
			validation.Provided(partial || in.Reason != nil),
			validation.Required(a.Reason),
		).
		Field("status", status...)
}

func (s *Service) CreateAppointment(ctx context.Context, in AppointmentInput) (*Appointment, error) {
	a := &Appointment{}
	in.Apply(a)
	if in.Status == nil {
		a.Status = StatusScheduled
	}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.validate(a, in, false, nil).Validate(ctx); err != nil {
			return err
		}
		return s.appointments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*Appointment, error) {
	return s.appointments.List(ctx)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, in AppointmentInput, partial bool) (*Appointment, error) {
	var out *Appointment
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		a, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		prev := *a
		in.Apply(a)
		if err := s.validate(a, in, partial, &prev).Validate(ctx); err != nil {
			return err
		}
		if err := s.appointments.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

// DeleteAppointment removes the appointment and its billing.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.appointments.Delete(ctx, id)
	})
}
