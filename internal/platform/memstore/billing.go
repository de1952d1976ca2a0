package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/billing"
	"github.com/hospital/hms/internal/platform/apperr"
)

type billingRepo struct{ s *Store }

func (r billingRepo) appointmentBilled(appointmentID, exclude uuid.UUID) bool {
	for id, b := range r.s.billings {
		if b.AppointmentID == appointmentID && id != exclude {
			return true
		}
	}
	return false
}

func (r billingRepo) check(b *billing.Billing) error {
	if _, ok := r.s.patients[b.PatientID]; !ok {
		return missing("patient", "Patient")
	}
	if _, ok := r.s.appointments[b.AppointmentID]; !ok {
		return missing("appointment", "Appointment")
	}
	if r.appointmentBilled(b.AppointmentID, b.ID) {
		return duplicate("appointment", billing.MsgAppointmentBilled)
	}
	if b.Amount < 0 {
		return duplicate("amount", "Ensure this value is greater than or equal to 0.")
	}
	return nil
}

func (r billingRepo) Create(_ context.Context, b *billing.Billing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(b); err != nil {
		return err
	}
	b.ID = uuid.New()
	b.BillingDate = r.s.timestamp()
	r.s.billings[b.ID] = *b
	return nil
}

func (r billingRepo) GetByID(_ context.Context, id uuid.UUID) (*billing.Billing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.billings[id]
	if !ok {
		return nil, apperr.NotFound("billing", id)
	}
	return &b, nil
}

func (r billingRepo) Update(_ context.Context, b *billing.Billing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.billings[b.ID]
	if !ok {
		return apperr.NotFound("billing", b.ID)
	}
	if err := r.check(b); err != nil {
		return err
	}
	stored := *b
	stored.BillingDate = prev.BillingDate
	r.s.billings[b.ID] = stored
	return nil
}

func (r billingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.billings[id]; !ok {
		return apperr.NotFound("billing", id)
	}
	delete(r.s.billings, id)
	return nil
}

func (r billingRepo) List(_ context.Context) ([]*billing.Billing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*billing.Billing, 0, len(r.s.billings))
	for _, b := range r.s.billings {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BillingDate.Equal(out[j].BillingDate) {
			return out[i].BillingDate.After(out[j].BillingDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r billingRepo) AppointmentBilled(_ context.Context, appointmentID, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.appointmentBilled(appointmentID, exclude), nil
}
