package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/clinical"
	"github.com/hospital/hms/internal/platform/apperr"
)

type medicalRecordRepo struct{ s *Store }

func (r medicalRecordRepo) check(m *clinical.MedicalRecord) error {
	if _, ok := r.s.patients[m.PatientID]; !ok {
		return missing("patient", "Patient")
	}
	if m.DoctorID != nil {
		if _, ok := r.s.doctors[*m.DoctorID]; !ok {
			return missing("doctor", "Doctor")
		}
	}
	return nil
}

func cloneRecord(m clinical.MedicalRecord) *clinical.MedicalRecord {
	m.DoctorID = cloneID(m.DoctorID)
	return &m
}

func (r medicalRecordRepo) Create(_ context.Context, m *clinical.MedicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(m); err != nil {
		return err
	}
	m.ID = uuid.New()
	m.CreatedAt = r.s.timestamp()
	r.s.records[m.ID] = *cloneRecord(*m)
	return nil
}

func (r medicalRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*clinical.MedicalRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.records[id]
	if !ok {
		return nil, apperr.NotFound("medical record", id)
	}
	return cloneRecord(m), nil
}

func (r medicalRecordRepo) Update(_ context.Context, m *clinical.MedicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.records[m.ID]
	if !ok {
		return apperr.NotFound("medical record", m.ID)
	}
	if err := r.check(m); err != nil {
		return err
	}
	stored := cloneRecord(*m)
	stored.CreatedAt = prev.CreatedAt
	r.s.records[m.ID] = *stored
	return nil
}

func (r medicalRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.records[id]; !ok {
		return apperr.NotFound("medical record", id)
	}
	delete(r.s.records, id)
	return nil
}

func (r medicalRecordRepo) List(_ context.Context) ([]*clinical.MedicalRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*clinical.MedicalRecord, 0, len(r.s.records))
	for _, m := range r.s.records {
		out = append(out, cloneRecord(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
