package main

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/hospital/hms/internal/config"
	"github.com/hospital/hms/internal/domain/billing"
	"github.com/hospital/hms/internal/domain/clinical"
	"github.com/hospital/hms/internal/domain/patient"
	"github.com/hospital/hms/internal/domain/scheduling"
	"github.com/hospital/hms/internal/domain/staff"
	"github.com/hospital/hms/internal/platform/db"
	"github.com/hospital/hms/internal/platform/memstore"
	"github.com/hospital/hms/internal/platform/middleware"
)

// repositories is the storage backend selected by STORE_DRIVER.
type repositories struct {
	departments  staff.DepartmentRepository
	doctors      staff.DoctorRepository
	patients     patient.PatientRepository
	appointments scheduling.AppointmentRepository
	records      clinical.MedicalRecordRepository
	billings     billing.BillingRepository
	tx           db.TxRunner
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		departments:  staff.NewDepartmentRepoPG(pool),
		doctors:      staff.NewDoctorRepoPG(pool),
		patients:     patient.NewPatientRepoPG(pool),
		appointments: scheduling.NewAppointmentRepoPG(pool),
		records:      clinical.NewMedicalRecordRepoPG(pool),
		billings:     billing.NewBillingRepoPG(pool),
		tx:           db.NewTransactor(pool),
	}
}

func memoryRepositories(store *memstore.Store) repositories {
	return repositories{
		departments:  store.Departments(),
		doctors:      store.Doctors(),
		patients:     store.Patients(),
		appointments: store.Appointments(),
		records:      store.MedicalRecords(),
		billings:     store.Billings(),
		tx:           store,
	}
}

type route struct {
	path    string
	handler echo.HandlerFunc
}

// collections are listed by the API root in this order.
var collections = []string{"departments", "doctors", "patients", "appointments", "medical-records", "billings"}

func apiRoot(c echo.Context) error {
	base := c.Scheme() + "://" + c.Request().Host + "/api/"
	links := make(map[string]string, len(collections))
	for _, name := range collections {
		links[name] = base + name + "/"
	}
	return c.JSON(http.StatusOK, links)
}

func buildServer(cfg *config.Config, logger zerolog.Logger, repos repositories, extra ...route) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": cfg.StoreDriver})
	})
	for _, r := range extra {
		e.GET(r.path, r.handler)
	}

	api := e.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           10 * time.Minute,
	}))
	api.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	api.GET("", apiRoot)

	staffSvc := staff.NewService(repos.departments, repos.doctors, repos.tx)
	staff.NewHandler(staffSvc).RegisterRoutes(api)

	patientSvc := patient.NewService(repos.patients, repos.tx)
	patient.NewHandler(patientSvc).RegisterRoutes(api)

	schedSvc := scheduling.NewService(repos.appointments, repos.patients, repos.doctors, repos.tx)
	scheduling.NewHandler(schedSvc).RegisterRoutes(api)

	clinicalSvc := clinical.NewService(repos.records, repos.patients, repos.doctors, repos.tx)
	clinical.NewHandler(clinicalSvc).RegisterRoutes(api)

	billingSvc := billing.NewService(repos.billings, repos.patients, repos.appointments, repos.tx)
	billing.NewHandler(billingSvc).RegisterRoutes(api)

	return e
}
