package billing

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
	api.GET("/billings", h.ListBillings)
	api.POST("/billings", h.CreateBilling)
	api.GET("/billings/:id", h.GetBilling)
	api.PUT("/billings/:id", h.UpdateBilling)
	api.PATCH("/billings/:id", h.PatchBilling)
	api.DELETE("/billings/:id", h.DeleteBilling)
}

func (h *Handler) ListBillings(c echo.Context) error {
	items, err := h.svc.ListBillings(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Billing{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateBilling(c echo.Context) error {
	var in BillingInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	b, err := h.svc.CreateBilling(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBilling(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	b, err := h.svc.GetBilling(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBilling(c echo.Context) error {
	return h.update(c, false)
}

func (h *Handler) PatchBilling(c echo.Context) error {
	return h.update(c, true)
}

func (h *Handler) update(c echo.Context, partial bool) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	var in BillingInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	b, err := h.svc.UpdateBilling(c.Request().Context(), id, in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBilling(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	if err := h.svc.DeleteBilling(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
