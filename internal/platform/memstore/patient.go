package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/patient"
	"github.com/hospital/hms/internal/platform/apperr"
)

type patientRepo struct{ s *Store }

func (r patientRepo) emailTaken(email string, exclude uuid.UUID) bool {
	for id, p := range r.s.patients {
		if p.Email == email && id != exclude {
			return true
		}
	}
	return false
}

func (r patientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(p.Email, uuid.Nil) {
		return duplicate("email", patient.MsgPatientEmailUnique)
	}
	p.ID = uuid.New()
	r.s.patients[p.ID] = *p
	return nil
}

func (r patientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.patients[id]
	if !ok {
		return nil, apperr.NotFound("patient", id)
	}
	return &p, nil
}

func (r patientRepo) Update(_ context.Context, p *patient.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[p.ID]; !ok {
		return apperr.NotFound("patient", p.ID)
	}
	if r.emailTaken(p.Email, p.ID) {
		return duplicate("email", patient.MsgPatientEmailUnique)
	}
	r.s.patients[p.ID] = *p
	return nil
}

func (r patientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[id]; !ok {
		return apperr.NotFound("patient", id)
	}
	r.s.deletePatient(id)
	return nil
}

func (r patientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*patient.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		return byName(out[i].LastName, out[i].FirstName, out[i].ID, out[j].LastName, out[j].FirstName, out[j].ID)
	})
	return out, nil
}

func (r patientRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.patients[id]
	return ok, nil
}

func (r patientRepo) EmailTaken(_ context.Context, email string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.emailTaken(email, exclude), nil
}
