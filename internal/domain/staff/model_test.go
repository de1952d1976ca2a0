package staff

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestDoctorInput_ApplyOnlyProvidedFields(t *testing.T) {
	dept := uuid.New()
	d := &Doctor{
		FirstName:    "Gregory",
		LastName:     "House",
		Email:        "house@example.com",
		DepartmentID: dept,
	}

	var in DoctorInput
	if err := json.Unmarshal([]byte(`{"email":" gh@example.com ","id":"`+uuid.New().String()+`"}`), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	in.Apply(d)

	if d.Email != "gh@example.com" {
		t.Errorf("expected trimmed email, got %q", d.Email)
	}
	if d.FirstName != "Gregory" || d.DepartmentID != dept {
		t.Errorf("expected untouched fields to be kept, got %+v", d)
	}
	if d.ID != uuid.Nil {
		t.Error("id must not be writable through input")
	}
}

func TestDoctor_JSONUsesReferenceName(t *testing.T) {
	dept := uuid.New()
	b, err := json.Marshal(&Doctor{DepartmentID: dept})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	_ = json.Unmarshal(b, &m)
	if m["department"] != dept.String() {
		t.Errorf("expected department key, got %s", b)
	}
	if _, ok := m["department_id"]; ok {
		t.Error("did not expect department_id key")
	}
}
