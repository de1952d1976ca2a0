package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/db"
	"github.com/hospital/hms/internal/platform/validation"
)

type Service struct {
	departments DepartmentRepository
	doctors     DoctorRepository
	tx          db.TxRunner
}

func NewService(dept DepartmentRepository, doc DoctorRepository, tx db.TxRunner) *Service {
	return &Service{departments: dept, doctors: doc, tx: tx}
}

// -- Department --

func (s *Service) validateDepartment(d *Department, in DepartmentInput, partial bool) *validation.Validator {
	return validation.New().
		Field("name",
			validation.Provided(partial || in.Name != nil),
			validation.Required(d.Name),
			validation.MaxLength(d.Name, 100),
			validation.Matches(d.Name, departmentNamePattern, MsgDepartmentNameLetters),
			validation.Unique(MsgDepartmentNameUnique, func(ctx context.Context) (bool, error) {
				return s.departments.NameTaken(ctx, d.Name, d.ID)
			}),
		)
}

func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (*Department, error) {
	d := &Department{}
	in.Apply(d)
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.validateDepartment(d, in, false).Validate(ctx); err != nil {
			return err
		}
		return s.departments.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	return s.departments.List(ctx)
}

// UpdateDepartment merges in over the stored record. With partial unset
// every required field must be present in the request.
func (s *Service) UpdateDepartment(ctx context.Context, id uuid.UUID, in DepartmentInput, partial bool) (*Department, error) {
	var out *Department
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		d, err := s.departments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(d)
		if err := s.validateDepartment(d, in, partial).Validate(ctx); err != nil {
			return err
		}
		if err := s.departments.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.departments.Delete(ctx, id)
	})
}

// -- Doctor --

func (s *Service) validateDoctor(d *Doctor, in DoctorInput, partial bool) *validation.Validator {
	return validation.New().
		Field("first_name",
			validation.Provided(partial || in.FirstName != nil),
			validation.Required(d.FirstName),
			validation.MaxLength(d.FirstName, 50),
		).
		Field("last_name",
			validation.Provided(partial || in.LastName != nil),
			validation.Required(d.LastName),
			validation.MaxLength(d.LastName, 50),
		).
		Field("specialization",
			validation.Provided(partial || in.Specialization != nil),
			validation.Required(d.Specialization),
			validation.MaxLength(d.Specialization, 100),
		).
		Field("phone_number",
			validation.Provided(partial || in.PhoneNumber != nil),
			validation.Required(d.PhoneNumber),
			validation.MaxLength(d.PhoneNumber, 20),
			validation.Phone(d.PhoneNumber),
		).
		Field("email",
			validation.Provided(partial || in.Email != nil),
			validation.Required(d.Email),
			validation.MaxLength(d.Email, 254),
			validation.Email(d.Email),
			validation.Unique(MsgDoctorEmailUnique, func(ctx context.Context) (bool, error) {
				return s.doctors.EmailTaken(ctx, d.Email, d.ID)
			}),
		).
		Field("department",
			validation.Provided(partial || in.Department != nil),
			validation.RequiredID(d.DepartmentID),
			validation.Exists(d.DepartmentID, s.departments),
		)
}

func (s *Service) CreateDoctor(ctx context.Context, in DoctorInput) (*Doctor, error) {
	d := &Doctor{}
	in.Apply(d)
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.validateDoctor(d, in, false).Validate(ctx); err != nil {
			return err
		}
		return s.doctors.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, in DoctorInput, partial bool) (*Doctor, error) {
	var out *Doctor
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		d, err := s.doctors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(d)
		if err := s.validateDoctor(d, in, partial).Validate(ctx); err != nil {
			return err
		}
		if err := s.doctors.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.doctors.Delete(ctx, id)
	})
}
