package staff

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
	api.GET("/departments", h.ListDepartments)
	api.POST("/departments", h.CreateDepartment)
	api.GET("/departments/:id", h.GetDepartment)
	api.PUT("/departments/:id", h.UpdateDepartment)
	api.PATCH("/departments/:id", h.PatchDepartment)
	api.DELETE("/departments/:id", h.DeleteDepartment)

	api.GET("/doctors", h.ListDoctors)
	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors/:id", h.GetDoctor)
	api.PUT("/doctors/:id", h.UpdateDoctor)
	api.PATCH("/doctors/:id", h.PatchDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)
}

// An id that is not a UUID cannot name a record.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "Not found.")
	}
	return id, nil
}

// -- Department Handlers --

func (h *Handler) ListDepartments(c echo.Context) error {
	items, err := h.svc.ListDepartments(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Department{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateDepartment(c echo.Context) error {
	var in DepartmentInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	d, err := h.svc.CreateDepartment(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDepartment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDepartment(c echo.Context) error { return h.updateDepartment(c, false) }

func (h *Handler) PatchDepartment(c echo.Context) error { return h.updateDepartment(c, true) }

func (h *Handler) updateDepartment(c echo.Context, partial bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in DepartmentInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	d, err := h.svc.UpdateDepartment(c.Request().Context(), id, in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDepartment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Doctor Handlers --

func (h *Handler) ListDoctors(c echo.Context) error {
	items, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var in DoctorInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	d, err := h.svc.CreateDoctor(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error { return h.updateDoctor(c, false) }

func (h *Handler) PatchDoctor(c echo.Context) error { return h.updateDoctor(c, true) }

func (h *Handler) updateDoctor(c echo.Context, partial bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in DoctorInput
	if err := validation.Bind(c, &in); err != nil {
		return err
	}
	d, err := h.svc.UpdateDoctor(c.Request().Context(), id, in, partial)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
