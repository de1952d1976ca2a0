package billing

import (
	"encoding/json"
	"testing"
)

func TestBillingInput_ApplyLeavesAbsentFields(t *testing.T) {
	b := Billing{Amount: 120.5, PaymentStatus: PaymentPending}
	var in BillingInput
	if err := json.Unmarshal([]byte(`{"payment_status":" Paid ","billing_date":"1999-01-01T00:00:00Z"}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	in.Apply(&b)
	if b.Amount != 120.5 {
		t.Errorf("expected amount to be kept, got %v", b.Amount)
	}
	if b.PaymentStatus != PaymentPaid {
		t.Errorf("expected trimmed status Paid, got %q", b.PaymentStatus)
	}
	if !b.BillingDate.IsZero() {
		t.Error("billing_date must not be writable")
	}
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Decimal
		wantErr bool
	}{
		{`5000`, 5000, false},
		{`19.99`, 19.99, false},
		{`"5000.00"`, 5000, false},
		{`" -100 "`, -100, false},
		{`"lots"`, 0, true},
		{`"NaN"`, 0, true},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		var d Decimal
		err := json.Unmarshal([]byte(tt.in), &d)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error %v", tt.in, err)
			continue
		}
		if !tt.wantErr && d != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.in, tt.want, d)
		}
	}
}
