package patient

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	p := Patient{FirstName: "Jane", DateOfBirth: NewDate(1990, time.May, 17)}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	_ = json.Unmarshal(b, &m)
	if m["date_of_birth"] != "1990-05-17" {
		t.Errorf("expected YYYY-MM-DD, got %v", m["date_of_birth"])
	}

	var back Patient
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.DateOfBirth.Equal(p.DateOfBirth.Time) {
		t.Errorf("expected %v, got %v", p.DateOfBirth, back.DateOfBirth)
	}
}

func TestDate_ZeroIsNull(t *testing.T) {
	b, _ := json.Marshal(Date{})
	if string(b) != "null" {
		t.Errorf("expected null, got %s", b)
	}
	var d Date
	if err := json.Unmarshal([]byte(`"17-05-1990"`), &d); err == nil {
		t.Error("expected malformed date to be rejected")
	}
}

func TestPatientInput_ApplyMalformedDateClearsValue(t *testing.T) {
	p := &Patient{DateOfBirth: NewDate(1990, time.May, 17)}
	bad := "not a date"
	PatientInput{DateOfBirth: &bad}.Apply(p)
	if !p.DateOfBirth.IsZero() {
		t.Errorf("expected zero date, got %v", p.DateOfBirth)
	}

	good := "2001-02-03"
	PatientInput{DateOfBirth: &good}.Apply(p)
	if p.DateOfBirth.String() != good {
		t.Errorf("expected %s, got %s", good, p.DateOfBirth)
	}
}
