package scheduling

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/validation"
)

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var Statuses = []string{StatusScheduled, StatusCompleted, StatusCancelled}

const MsgAppointmentInPast = "Appointment date cannot be in the past."

// transitions lists the statuses reachable from each status. Completed and
// Cancelled are terminal.
var transitions = map[string][]string{
	StatusScheduled: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an appointment may move from one status to
// another. Keeping the current status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor"`
	Date      time.Time `db:"date" json:"date"`
	Reason    string    `db:"reason" json:"reason"`
	Status    string    `db:"status" json:"status"`
}

// AppointmentInput is the writable subset of Appointment. date is kept raw
// so that a malformed timestamp is reported against the field.
type AppointmentInput struct {
	Patient *uuid.UUID `json:"patient"`
	Doctor  *uuid.UUID `json:"doctor"`
	Date    *string    `json:"date"`
	Reason  *string    `json:"reason"`
	Status  *string    `json:"status"`
}

func (in AppointmentInput) Apply(a *Appointment) {
	if in.Patient != nil {
		a.PatientID = *in.Patient
	}
	if in.Doctor != nil {
		a.DoctorID = *in.Doctor
	}
	if in.Date != nil {
		t, err := validation.ParseDateTime(*in.Date)
		if err != nil {
			t = time.Time{}
		}
		a.Date = t.UTC()
	}
	if in.Reason != nil {
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Status != nil {
		a.Status = strings.TrimSpace(*in.Status)
	}
}
