//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospital/hms/internal/domain/billing"
	"github.com/hospital/hms/internal/domain/clinical"
	"github.com/hospital/hms/internal/domain/patient"
	"github.com/hospital/hms/internal/domain/scheduling"
	"github.com/hospital/hms/internal/domain/staff"
	"github.com/hospital/hms/internal/platform/db"
)

// globalPool is shared by every test and reset between them.
var globalPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	connStr, cleanup, err := startPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres: %v\n", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{URL: connStr, MaxConns: 10})
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	if _, err := db.NewMigrator(pool, findMigrationsDir()).Up(ctx); err != nil {
		pool.Close()
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
		os.Exit(1)
	}

	globalPool = pool
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

// resetTables empties every table; department cascades to the rest except
// patient.
func resetTables(t *testing.T, ctx context.Context) {
	t.Helper()
	if _, err := globalPool.Exec(ctx, `TRUNCATE department, patient CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

type repos struct {
	departments  staff.DepartmentRepository
	doctors      staff.DoctorRepository
	patients     patient.PatientRepository
	appointments scheduling.AppointmentRepository
	records      clinical.MedicalRecordRepository
	billings     billing.BillingRepository
}

func newRepos() repos {
	return repos{
		departments:  staff.NewDepartmentRepoPG(globalPool),
		doctors:      staff.NewDoctorRepoPG(globalPool),
		patients:     patient.NewPatientRepoPG(globalPool),
		appointments: scheduling.NewAppointmentRepoPG(globalPool),
		records:      clinical.NewMedicalRecordRepoPG(globalPool),
		billings:     billing.NewBillingRepoPG(globalPool),
	}
}

type graph struct {
	dept   *staff.Department
	doctor *staff.Doctor
	pat    *patient.Patient
	appt   *scheduling.Appointment
	record *clinical.MedicalRecord
	bill   *billing.Billing
}

// seedGraph inserts one record of every kind, linked together.
func seedGraph(t *testing.T, ctx context.Context, r repos) graph {
	t.Helper()
	var g graph

	g.dept = &staff.Department{Name: "Cardiology", Description: "Heart"}
	mustNil(t, r.departments.Create(ctx, g.dept))
	g.doctor = &staff.Doctor{FirstName: "Grace", LastName: "Hopper", Specialization: "Cardiology",
		PhoneNumber: "+254712345678", Email: "grace-" + uuid.NewString()[:8] + "@example.com", DepartmentID: g.dept.ID}
	mustNil(t, r.doctors.Create(ctx, g.doctor))
	g.pat = &patient.Patient{FirstName: "Alan", LastName: "Turing",
		DateOfBirth: patient.NewDate(1990, time.June, 23),
		PhoneNumber: "0712345678", Email: "alan-" + uuid.NewString()[:8] + "@example.com", Address: "Bletchley"}
	mustNil(t, r.patients.Create(ctx, g.pat))
	g.appt = &scheduling.Appointment{PatientID: g.pat.ID, DoctorID: g.doctor.ID,
		Date: time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond), Reason: "Chest pain",
		Status: scheduling.StatusScheduled}
	mustNil(t, r.appointments.Create(ctx, g.appt))
	docID := g.doctor.ID
	g.record = &clinical.MedicalRecord{PatientID: g.pat.ID, DoctorID: &docID, Diagnosis: "Angina", Treatment: "Rest"}
	mustNil(t, r.records.Create(ctx, g.record))
	g.bill = &billing.Billing{PatientID: g.pat.ID, AppointmentID: g.appt.ID, Amount: 5000,
		PaymentStatus: billing.PaymentPending}
	mustNil(t, r.billings.Create(ctx, g.bill))
	return g
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
