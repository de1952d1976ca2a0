package clinical

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestMedicalRecordInput_DoctorKey(t *testing.T) {
	doc := uuid.New()
	existing := MedicalRecord{DoctorID: &doc, Diagnosis: "Flu"}

	tests := []struct {
		name    string
		body    string
		wantNil bool
	}{
		{"absent keeps doctor", `{"diagnosis":"Cold"}`, false},
		{"null clears doctor", `{"doctor":null}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in MedicalRecordInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("decode: %v", err)
			}
			r := existing
			in.Apply(&r)
			if (r.DoctorID == nil) != tt.wantNil {
				t.Errorf("DoctorID = %v, wantNil %v", r.DoctorID, tt.wantNil)
			}
		})
	}
}

func TestOptionalID_Value(t *testing.T) {
	id := uuid.New()
	var in MedicalRecordInput
	if err := json.Unmarshal([]byte(`{"doctor":"`+id.String()+`"}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !in.Doctor.Set || in.Doctor.Value == nil || *in.Doctor.Value != id {
		t.Errorf("unexpected %+v", in.Doctor)
	}
	if err := json.Unmarshal([]byte(`{"doctor":"nope"}`), &in); err == nil {
		t.Error("expected malformed id to fail decoding")
	}
}

func TestMedicalRecord_JSONNullDoctor(t *testing.T) {
	b, _ := json.Marshal(MedicalRecord{})
	var got map[string]interface{}
	_ = json.Unmarshal(b, &got)
	if v, ok := got["doctor"]; !ok || v != nil {
		t.Errorf("expected doctor to render as null, got %s", b)
	}
}
