package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/db"
	"github.com/hospital/hms/internal/platform/validation"
)

type Service struct {
	patients PatientRepository
	tx       db.TxRunner
	now      func() time.Time
}

func NewService(repo PatientRepository, tx db.TxRunner) *Service {
	return &Service{patients: repo, tx: tx, now: time.Now}
}

// SetClock replaces the clock used for the date_of_birth check.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) validate(p *Patient, in PatientInput, partial bool) *validation.Validator {
	return validation.New().
		Field("first_name",
			validation.Provided(partial || in.FirstName != nil),
			validation.Required(p.FirstName),
			validation.MaxLength(p.FirstName, 50),
		).
		Field("last_name",
			validation.Provided(partial || in.LastName != nil),
			validation.Required(p.LastName),
			validation.MaxLength(p.LastName, 50),
		).
		Field("date_of_birth",
			validation.Provided(partial || in.DateOfBirth != nil),
			validation.Parses(in.DateOfBirth, validation.ParseDate, validation.DateFormatMessage),
			validation.RequiredTime(p.DateOfBirth.Time),
			validation.NotFuture(p.DateOfBirth.Time, s.now(), MsgBirthDateInFuture),
		).
		Field("phone_number",
			validation.Provided(partial || in.PhoneNumber != nil),
			validation.Required(p.PhoneNumber),
			validation.MaxLength(p.PhoneNumber, 20),
			validation.Phone(p.PhoneNumber),
		).
		Field("email",
			validation.Provided(partial || in.Email != nil),
			validation.Required(p.Email),
			validation.MaxLength(p.Email, 254),
			validation.Email(p.Email),
			validation.Unique(MsgPatientEmailUnique, func(ctx context.Context) (bool, error) {
				return s.patients.EmailTaken(ctx, p.Email, p.ID)
			}),
		).
		Field("address",
			validation.Provided(partial || in.Address != nil),
			validation.Required(p.Address),
		)
}

func (s *Service) CreatePatient(ctx context.Context, in PatientInput) (*Patient, error) {
	p := &Patient{}
	in.Apply(p)
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.validate(p, in, false).Validate(ctx); err != nil {
			return err
		}
		return s.patients.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, in PatientInput, partial bool) (*Patient, error) {
	var out *Patient
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		p, err := s.patients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(p)
		if err := s.validate(p, in, partial).Validate(ctx); err != nil {
			return err
		}
		if err := s.patients.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// DeletePatient removes the patient and everything that references it.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.patients.Delete(ctx, id)
	})
}
