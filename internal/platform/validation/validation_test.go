package validation

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

type stubExister struct {
	ids   map[uuid.UUID]bool
	err   error
	calls int
}

func (s *stubExister) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.ids[id], nil
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Fields
}

func TestValidate_AllPass(t *testing.T) {
	err := New().
		Field("name", Required("Cardiology"), MaxLength("Cardiology", 100)).
		Field("email", Email("alice@example.com")).
		Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StopsAtFirstFailurePerField(t *testing.T) {
	letters := regexp.MustCompile(`^[a-zA-Z ]+$`)
	err := New().
		Field("name", Required(""), Matches("", letters, "letters only")).
		Field("email", Email("not-an-email")).
		Validate(context.Background())

	fields := fieldErrors(t, err)
	if got := fields["name"]; len(got) != 1 || got[0] != RequiredMessage {
		t.Errorf("expected only the required message for name, got %v", got)
	}
	if got := fields["email"]; len(got) != 1 || got[0] != "Enter a valid email address." {
		t.Errorf("unexpected email errors: %v", got)
	}
}

func TestValidate_LookupErrorAborts(t *testing.T) {
	boom := errors.New("connection refused")
	ex := &stubExister{err: boom}
	err := New().Field("department", Exists(uuid.New(), ex)).Validate(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
	if apperr.IsValidation(err) {
		t.Error("lookup failure must not be reported as a validation error")
	}
}

func TestExists(t *testing.T) {
	known := uuid.New()
	ex := &stubExister{ids: map[uuid.UUID]bool{known: true}}

	if err := New().Field("doctor", RequiredID(known), Exists(known, ex)).Validate(context.Background()); err != nil {
		t.Errorf("expected known id to validate, got %v", err)
	}

	missing := uuid.New()
	fields := fieldErrors(t, New().Field("doctor", Exists(missing, ex)).Validate(context.Background()))
	want := `Invalid pk "` + missing.String() + `" - object does not exist.`
	if fields["doctor"][0] != want {
		t.Errorf("expected %q, got %q", want, fields["doctor"][0])
	}
}

func TestRequiredID_ShortCircuitsLookup(t *testing.T) {
	ex := &stubExister{}
	err := New().Field("patient", RequiredID(uuid.Nil), Exists(uuid.Nil, ex)).Validate(context.Background())
	if fieldErrors(t, err)["patient"][0] != RequiredMessage {
		t.Errorf("expected required message")
	}
	if ex.calls != 0 {
		t.Errorf("expected no lookup after required failure, got %d", ex.calls)
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"0712345678", "+254712345678", "123456789", "+112345678901234"}
	for _, p := range valid {
		if ok, _ := Phone(p).Check(context.Background()); !ok {
			t.Errorf("expected %q to be a valid phone", p)
		}
	}
	invalid := []string{"", "12345678", "+12-345-678-90", "phone", "1234567890123456789"}
	for _, p := range invalid {
		if ok, _ := Phone(p).Check(context.Background()); ok {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestEmail(t *testing.T) {
	if ok, _ := Email("john@example.com").Check(context.Background()); !ok {
		t.Error("expected valid email")
	}
	for _, e := range []string{"", "john", "john@", "@example.com"} {
		if ok, _ := Email(e).Check(context.Background()); ok {
			t.Errorf("expected %q to be rejected", e)
		}
	}
}

func TestMaxLength_CountsRunes(t *testing.T) {
	if ok, _ := MaxLength("ééé", 3).Check(context.Background()); !ok {
		t.Error("expected 3 runes to fit in 3")
	}
	if ok, _ := MaxLength("abcd", 3).Check(context.Background()); ok {
		t.Error("expected 4 characters to exceed 3")
	}
}

func TestOneOf(t *testing.T) {
	r := OneOf("Paid", "Pending", "Paid", "Cancelled")
	if ok, _ := r.Check(context.Background()); !ok {
		t.Error("expected Paid to be allowed")
	}
	r = OneOf("Refunded", "Pending", "Paid", "Cancelled")
	if ok, _ := r.Check(context.Background()); ok {
		t.Error("expected Refunded to be rejected")
	}
	if r.Message != `"Refunded" is not a valid choice.` {
		t.Errorf("unexpected message %q", r.Message)
	}
}

func TestNotFuture(t *testing.T) {
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	if ok, _ := NotFuture(today, now, "future").Check(context.Background()); !ok {
		t.Error("expected today to be accepted")
	}
	if ok, _ := NotFuture(tomorrow, now, "future").Check(context.Background()); ok {
		t.Error("expected tomorrow to be rejected")
	}
}

func TestNotPast(t *testing.T) {
	now := time.Now()
	if ok, _ := NotPast(now, now, "past").Check(context.Background()); !ok {
		t.Error("expected now to be accepted")
	}
	if ok, _ := NotPast(now.Add(-time.Second), now, "past").Check(context.Background()); ok {
		t.Error("expected one second ago to be rejected")
	}
}

func TestDecimalRules(t *testing.T) {
	cases := []struct {
		v      float64
		places bool
		whole  bool
	}{
		{5000, true, true},
		{0, true, true},
		{19.99, true, true},
		{0.125, false, true},
		{99999999.99, true, true},
		{100000000, true, false},
	}
	for _, tc := range cases {
		if ok, _ := MaxDecimalPlaces(tc.v, 2).Check(context.Background()); ok != tc.places {
			t.Errorf("MaxDecimalPlaces(%v) = %v, want %v", tc.v, ok, tc.places)
		}
		if ok, _ := MaxWholeDigits(tc.v, 8).Check(context.Background()); ok != tc.whole {
			t.Errorf("MaxWholeDigits(%v) = %v, want %v", tc.v, ok, tc.whole)
		}
	}
}

func TestMinValue(t *testing.T) {
	r := MinValue(-100, 0)
	if ok, _ := r.Check(context.Background()); ok {
		t.Error("expected negative value to be rejected")
	}
	if r.Message != "Ensure this value is greater than or equal to 0." {
		t.Errorf("unexpected message %q", r.Message)
	}
}

func TestUnique(t *testing.T) {
	taken := func(context.Context) (bool, error) { return true, nil }
	fields := fieldErrors(t, New().Field("email", Unique("Doctor email must be unique.", taken)).Validate(context.Background()))
	if fields["email"][0] != "Doctor email must be unique." {
		t.Errorf("unexpected message %v", fields["email"])
	}
}

func TestWhen(t *testing.T) {
	fail := Predicate("never", func() bool { return false })
	if ok, _ := When(false, fail).Check(context.Background()); !ok {
		t.Error("expected skipped rule to pass")
	}
	if ok, _ := When(true, fail).Check(context.Background()); ok {
		t.Error("expected applied rule to fail")
	}
}

func TestProvided_PrecedesFormatRules(t *testing.T) {
	err := New().
		Field("email", Provided(false), Email("")).
		Validate(context.Background())
	if got := fieldErrors(t, err)["email"]; len(got) != 1 || got[0] != RequiredMessage {
		t.Errorf("expected required message only, got %v", got)
	}
}
