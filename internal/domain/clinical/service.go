package clinical

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/db"
	"github.com/hospital/hms/internal/platform/validation"
)

type Service struct {
	records  MedicalRecordRepository
	patients validation.Exister
	doctors  validation.Exister
	tx       db.TxRunner
}

func NewService(repo MedicalRecordRepository, patients, doctors validation.Exister, tx db.TxRunner) *Service {
	return &Service{records: repo, patients: patients, doctors: doctors, tx: tx}
}

func (s *Service) validate(r *MedicalRecord, in MedicalRecordInput, partial bool) *validation.Validator {
	var doctorID uuid.UUID
	if r.DoctorID != nil {
		doctorID = *r.DoctorID
	}
	return validation.New().
		Field("patient",
			validation.Provided(partial || in.Patient != nil),
			validation.RequiredID(r.PatientID),
			validation.Exists(r.PatientID, s.patients),
		).
		Field("doctor", validation.When(r.DoctorID != nil, validation.Exists(doctorID, s.doctors))).
		Field("diagnosis",
			validation.Provided(partial || in.Diagnosis != nil),
			validation.Required(r.Diagnosis),
		).
		Field("treatment",
			validation.Provided(partial || in.Treatment != nil),
			validation.Required(r.Treatment),
		)
}

func (s *Service) CreateMedicalRecord(ctx context.Context, in MedicalRecordInput) (*MedicalRecord, error) {
	r := &MedicalRecord{}
	in.Apply(r)
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.validate(r, in, false).Validate(ctx); err != nil {
			return err
		}
		return s.records.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetMedicalRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) ListMedicalRecords(ctx context.Context) ([]*MedicalRecord, error) {
	return s.records.List(ctx)
}

func (s *Service) UpdateMedicalRecord(ctx context.Context, id uuid.UUID, in MedicalRecordInput, partial bool) (*MedicalRecord, error) {
	var out *MedicalRecord
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		r, err := s.records.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(r)
		if err := s.validate(r, in, partial).Validate(ctx); err != nil {
			return err
		}
		if err := s.records.Update(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

func (s *Service) DeleteMedicalRecord(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.records.Delete(ctx, id)
	})
}
