package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/staff"
	"github.com/hospital/hms/internal/platform/apperr"
)

type departmentRepo struct{ s *Store }

func (r departmentRepo) nameTaken(name string, exclude uuid.UUID) bool {
	for id, d := range r.s.departments {
		if d.Name == name && id != exclude {
			return true
		}
	}
	return false
}

func (r departmentRepo) Create(_ context.Context, d *staff.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(d.Name, uuid.Nil) {
		return duplicate("name", staff.MsgDepartmentNameUnique)
	}
	d.ID = uuid.New()
	r.s.departments[d.ID] = *d
	return nil
}

func (r departmentRepo) GetByID(_ context.Context, id uuid.UUID) (*staff.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.departments[id]
	if !ok {
		return nil, apperr.NotFound("department", id)
	}
	return &d, nil
}

func (r departmentRepo) Update(_ context.Context, d *staff.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.departments[d.ID]; !ok {
		return apperr.NotFound("department", d.ID)
	}
	if r.nameTaken(d.Name, d.ID) {
		return duplicate("name", staff.MsgDepartmentNameUnique)
	}
	r.s.departments[d.ID] = *d
	return nil
}

// Delete removes the department and, through its doctors, their
// appointments and billings.
func (r departmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.departments[id]; !ok {
		return apperr.NotFound("department", id)
	}
	r.s.deleteDepartment(id)
	return nil
}

func (r departmentRepo) List(_ context.Context) ([]*staff.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*staff.Department, 0, len(r.s.departments))
	for _, d := range r.s.departments {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r departmentRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.departments[id]
	return ok, nil
}

func (r departmentRepo) NameTaken(_ context.Context, name string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.nameTaken(name, exclude), nil
}

type doctorRepo struct{ s *Store }

func (r doctorRepo) emailTaken(email string, exclude uuid.UUID) bool {
	for id, d := range r.s.doctors {
		if d.Email == email && id != exclude {
			return true
		}
	}
	return false
}

func (r doctorRepo) check(d *staff.Doctor) error {
	if _, ok := r.s.departments[d.DepartmentID]; !ok {
		return missing("department", "Department")
	}
	if r.emailTaken(d.Email, d.ID) {
		return duplicate("email", staff.MsgDoctorEmailUnique)
	}
	return nil
}

func (r doctorRepo) Create(_ context.Context, d *staff.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(d); err != nil {
		return err
	}
	d.ID = uuid.New()
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) GetByID(_ context.Context, id uuid.UUID) (*staff.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, apperr.NotFound("doctor", id)
	}
	return &d, nil
}

func (r doctorRepo) Update(_ context.Context, d *staff.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[d.ID]; !ok {
		return apperr.NotFound("doctor", d.ID)
	}
	if err := r.check(d); err != nil {
		return err
	}
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return apperr.NotFound("doctor", id)
	}
	r.s.deleteDoctor(id)
	return nil
}

func (r doctorRepo) List(_ context.Context) ([]*staff.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*staff.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		return byName(out[i].LastName, out[i].FirstName, out[i].ID, out[j].LastName, out[j].FirstName, out[j].ID)
	})
	return out, nil
}

func (r doctorRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.doctors[id]
	return ok, nil
}

func (r doctorRepo) EmailTaken(_ context.Context, email string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.emailTaken(email, exclude), nil
}

// byName orders people by last name, then first name.
func byName(lastA, firstA string, idA uuid.UUID, lastB, firstB string, idB uuid.UUID) bool {
	if lastA != lastB {
		return lastA < lastB
	}
	if firstA != firstB {
		return firstA < firstB
	}
	return idA.String() < idB.String()
}
