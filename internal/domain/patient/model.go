package patient

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/validation"
)

const (
	MsgPatientEmailUnique = "Patient email must be unique."
	MsgBirthDateInFuture  = "Date of birth cannot be in the future."
)

// Date is a calendar date without time of day, serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(validation.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

// Patient maps to the patient table.
type Patient struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	DateOfBirth Date      `db:"date_of_birth" json:"date_of_birth"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Email       string    `db:"email" json:"email"`
	Address     string    `db:"address" json:"address"`
}

func (p *Patient) String() string { return p.FirstName + " " + p.LastName }

// PatientInput is the writable subset of Patient. date_of_birth is kept raw
// so that a malformed value is reported against the field.
type PatientInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

func (in PatientInput) Apply(p *Patient) {
	setString(&p.FirstName, in.FirstName)
	setString(&p.LastName, in.LastName)
	setString(&p.PhoneNumber, in.PhoneNumber)
	setString(&p.Email, in.Email)
	setString(&p.Address, in.Address)
	if in.DateOfBirth != nil {
		t, err := validation.ParseDate(*in.DateOfBirth)
		if err != nil {
			t = time.Time{}
		}
		p.DateOfBirth = Date{t}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
