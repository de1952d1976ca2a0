package staff

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	MsgDepartmentNameUnique  = "Department name must be unique."
	MsgDepartmentNameLetters = "Department name must contain only letters and spaces."
	MsgDoctorEmailUnique     = "Doctor email must be unique."
)

var departmentNamePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)

// Department maps to the department table.
type Department struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
}

func (d *Department) String() string { return d.Name }

// Doctor maps to the doctor table. Every doctor belongs to one department.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Specialization string    `db:"specialization" json:"specialization"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Email          string    `db:"email" json:"email"`
	DepartmentID   uuid.UUID `db:"department_id" json:"department"`
}

func (d *Doctor) String() string { return "Dr. " + d.FirstName + " " + d.LastName }

// DepartmentInput is the writable subset of Department. A nil field was
// absent from the request body.
type DepartmentInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Apply copies the provided fields onto d.
func (in DepartmentInput) Apply(d *Department) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
}

type DoctorInput struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Specialization *string    `json:"specialization"`
	PhoneNumber    *string    `json:"phone_number"`
	Email          *string    `json:"email"`
	Department     *uuid.UUID `json:"department"`
}

func (in DoctorInput) Apply(d *Doctor) {
	setString(&d.FirstName, in.FirstName)
	setString(&d.LastName, in.LastName)
	setString(&d.Specialization, in.Specialization)
	setString(&d.PhoneNumber, in.PhoneNumber)
	setString(&d.Email, in.Email)
	if in.Department != nil {
		d.DepartmentID = *in.Department
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
