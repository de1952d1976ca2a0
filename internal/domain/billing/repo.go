package billing

import (
	"context"

	"github.com/google/uuid"
)

type BillingRepository interface {
	Create(ctx context.Context, b *Billing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Billing, error)
	Update(ctx context.Context, b *Billing) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Billing, error)
	// AppointmentBilled reports whether a billing other than exclude
	// already references the appointment.
	AppointmentBilled(ctx context.Context, appointmentID, exclude uuid.UUID) (bool, error)
}
