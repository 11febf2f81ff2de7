package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/unihealth/unihealth/internal/platform/auth"
	"github.com/unihealth/unihealth/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – any authenticated user
	readGroup := api.Group("", auth.RequireRole("admin", "doctor", "patient"))
	readGroup.GET("/doctors/:id", h.GetDoctor)
	readGroup.GET("/doctors/:id/availability", h.GetAvailability)
	readGroup.GET("/doctors/:id/dates", h.GetBookableDates)
	readGroup.GET("/clinics/:id", h.GetClinic)

	// Appointment listing is for staff
	staffGroup := api.Group("", auth.RequireRole("admin", "doctor"))
	staffGroup.GET("/doctors/:id/appointments", h.ListDoctorAppointments)
	staffGroup.PUT("/referrals/:id/status", h.UpdateReferralStatus)

	// Booking endpoints
	bookGroup := api.Group("", auth.RequireRole("admin", "doctor", "patient"))
	bookGroup.POST("/appointments", h.CreateAppointment)
	bookGroup.POST("/appointments/:id/cancel", h.CancelAppointment)
	bookGroup.POST("/referrals", h.CreateReferral)
}

// httpError maps domain sentinels onto HTTP status codes so every handler
// reports booking failures the same way.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrClinicNotFound),
		errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrReferralNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoScheduleForDate):
		return echo.NewHTTPError(http.StatusNotFound, "no available schedule for this date")
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotNotOffered):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrScheduleFetch), errors.Is(err, ErrBookingFetch):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	doctor, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (h *Handler) GetClinic(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	clinic, err := h.svc.GetClinic(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, clinic)
}

type availabilityResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []Slot    `json:"slots"`
}

func (h *Handler) GetAvailability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dateParam := c.QueryParam("date")
	if dateParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter required")
	}
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	slots, err := h.svc.Availability(c.Request().Context(), id, date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, availabilityResponse{
		DoctorID: id,
		Date:     dateParam,
		Slots:    slots,
	})
}

type datesResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Dates    []string  `json:"dates"`
}

func (h *Handler) GetBookableDates(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dates, err := h.svc.BookableDates(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return c.JSON(http.StatusOK, datesResponse{DoctorID: id, Dates: out})
}

func (h *Handler) ListDoctorAppointments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctorAppointments(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.BookAppointment(c.Request().Context(), &a); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.CancelAppointment(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateReferral(c echo.Context) error {
	var r Referral
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.BookReferral(c.Request().Context(), &r); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateReferralStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateReferralStatus(c.Request().Context(), id, req.Status); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
