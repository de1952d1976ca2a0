package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/db"
	"github.com/hospital/hms/internal/platform/validation"
)

// Amount shape of a NUMERIC(10,2) column.
const (
	amountPlaces      = 2
	amountWholeDigits = 8
)

type Service struct {
	billings     BillingRepository
	patients     validation.Exister
	appointments validation.Exister
	tx           db.TxRunner
}

func NewService(repo BillingRepository, patients, appointments validation.Exister, tx db.TxRunner) *Service {
	return &Service{billings: repo, patients: patients, appointments: appointments, tx: tx}
}

func (s *Service) validate(b *Billing, in BillingInput, partial bool) *validation.Validator {
	return validation.New().
		Field("patient",
			validation.Provided(partial || in.Patient != nil),
			validation.RequiredID(b.PatientID),
			validation.Exists(b.PatientID, s.patients),
		).
		Field("appointment",
			validation.Provided(partial || in.Appointment != nil),
			validation.RequiredID(b.AppointmentID),
			validation.Exists(b.AppointmentID, s.appointments),
			validation.Unique(MsgAppointmentBilled, func(ctx context.Context) (bool, error) {
				return s.billings.AppointmentBilled(ctx, b.AppointmentID, b.ID)
			}),
		).
		Field("amount",
			validation.Provided(partial || in.Amount != nil),
			validation.MinValue(b.Amount, 0),
			validation.MaxDecimalPlaces(b.Amount, amountPlaces),
			validation.MaxWholeDigits(b.Amount, amountWholeDigits),
		).
		Field("payment_status", validation.OneOf(b.PaymentStatus, PaymentStatuses...))
}

func (s *Service) CreateBilling(ctx context.Context, in BillingInput) (*Billing, error) {
	b := &Billing{}
	in.Apply(b)
	if in.PaymentStatus == nil {
		b.PaymentStatus = PaymentPending
	}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.validate(b, in, false).Validate(ctx); err != nil {
			return err
		}
		return s.billings.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBilling(ctx context.Context, id uuid.UUID) (*Billing, error) {
	return s.billings.GetByID(ctx, id)
}

func (s *Service) ListBillings(ctx context.Context) ([]*Billing, error) {
	return s.billings.List(ctx)
}

func (s *Service) UpdateBilling(ctx context.Context, id uuid.UUID, in BillingInput, partial bool) (*Billing, error) {
	var out *Billing
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		b, err := s.billings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(b)
		if err := s.validate(b, in, partial).Validate(ctx); err != nil {
			return err
		}
		if err := s.billings.Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	return out, err
}

func (s *Service) DeleteBilling(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.billings.Delete(ctx, id)
	})
}
