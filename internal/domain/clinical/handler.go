package clinical

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital/hms/internal/platform/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medical-records", h.ListMedicalRecords)
	api.POST("/medical-records", h.CreateMedicalRecord)
	api.GET("/medical-records/:id", h.GetMedicalRecord)
	api.PUT("/medical-records/:id", h.UpdateMedicalRecord)
	api.PATCH("/medical-records/:id", h.PatchMedicalRecord)
	api.DELETE("/medical-records/:id", h.DeleteMedicalRecord)
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	return id, nil
}

func (h *Handler) ListMedicalRecords(c echo.Context) error {
	items, err := h.svc.ListMedicalRecords(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*MedicalRecord{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMedicalRecord(c echo.Context) error {
	var in MedicalRecordInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	r, err := h.svc.CreateMedicalRecord(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetMedicalRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.GetMedicalRecord(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) UpdateMedicalRecord(c echo.Context) error { return h.update(c, false) }

func (h *Handler) PatchMedicalRecord(c echo.Context) error { return h.update(c, true) }

func (h *Handler) update(c echo.Context, partial bool) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in MedicalRecordInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	r, err := h.svc.UpdateMedicalRecord(c.Request().Context(), id, in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteMedicalRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMedicalRecord(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
