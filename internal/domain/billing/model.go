package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/validation"
)

// Payment statuses.
const (
	PaymentPending   = "Pending"
	PaymentPaid      = "Paid"
	PaymentCancelled = "Cancelled"
)

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentCancelled}

const MsgAppointmentBilled = "Billing with this appointment already exists."

// Billing maps to the billing table. amount is NUMERIC(10,2).
type Billing struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	BillingDate   time.Time `db:"billing_date" json:"billing_date"`
}

// BillingInput is the writable subset of Billing. billing_date is assigned
// by the store.
type BillingInput struct {
	Patient       *uuid.UUID `json:"patient"`
	Appointment   *uuid.UUID `json:"appointment"`
	Amount        *Decimal   `json:"amount"`
	PaymentStatus *string    `json:"payment_status"`
}

func (in BillingInput) Apply(b *Billing) {
	if in.Patient != nil {
		b.PatientID = *in.Patient
	}
	if in.Appointment != nil {
		b.AppointmentID = *in.Appointment
	}
	if in.Amount != nil {
		b.Amount = float64(*in.Amount)
	}
	if in.PaymentStatus != nil {
		b.PaymentStatus = strings.TrimSpace(*in.PaymentStatus)
	}
}

// Decimal is a request amount. It accepts a JSON number or a numeric string
// such as "5000.00".
type Decimal float64

var errNotNumber = errors.New("not a number")

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return errNotNumber
	}
	*d = Decimal(v)
	return nil
}

func (Decimal) InvalidMessage() string { return validation.NumberMessage }
