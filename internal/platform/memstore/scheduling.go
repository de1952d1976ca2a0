package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/scheduling"
	"github.com/hospital/hms/internal/platform/apperr"
)

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) check(a *scheduling.Appointment) error {
	if _, ok := r.s.patients[a.PatientID]; !ok {
		return missing("patient", "Patient")
	}
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return missing("doctor", "Doctor")
	}
	return nil
}

func (r appointmentRepo) Create(_ context.Context, a *scheduling.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(a); err != nil {
		return err
	}
	a.ID = uuid.New()
	r.s.appointments[a.ID] = *a
	return nil
}

func (r appointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment", id)
	}
	return &a, nil
}

func (r appointmentRepo) Update(_ context.Context, a *scheduling.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[a.ID]; !ok {
		return apperr.NotFound("appointment", a.ID)
	}
	if err := r.check(a); err != nil {
		return err
	}
	r.s.appointments[a.ID] = *a
	return nil
}

func (r appointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[id]; !ok {
		return apperr.NotFound("appointment", id)
	}
	r.s.deleteAppointment(id)
	return nil
}

func (r appointmentRepo) List(_ context.Context) ([]*scheduling.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*scheduling.Appointment, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r appointmentRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.appointments[id]
	return ok, nil
}
