package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/OyhamburoDev/luna-backend/internal/middleware"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PinHandler handles HTTP requests related to map pins
type PinHandler struct {
	pins *services.PinService
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(pins *services.PinService) *PinHandler {
	return &PinHandler{pins: pins}
}

// RegisterPinRoutes registers pin-related routes
func (h *PinHandler) RegisterPinRoutes(g *echo.Group) {
	g.POST("/pins", h.CreatePin)
	g.GET("/pins", h.ListPins)
	g.GET("/pins/daily-status", h.GetDailyStatus)
	g.POST("/pins/:id/report", h.ReportPin)
	g.DELETE("/pins/:id", h.DeactivatePin)
}

// CreatePin creates a new lost/found/sighted report
func (h *PinHandler) CreatePin(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	var req models.CreatePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	marker, err := base64.StdEncoding.DecodeString(req.MarkerImage)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "marker_image is not valid base64")
	}
	photo, err := base64.StdEncoding.DecodeString(req.Photo)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo is not valid base64")
	}

	pin, err := h.pins.Create(c.Request().Context(), uid, services.CreatePinInput{
		Category:    req.Category,
		Animal:      req.Animal,
		Trait:       req.Trait,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		MarkerImage: marker,
		Photo:       photo,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, pin)
}

// ListPins returns all active pins for the map screen
func (h *PinHandler) ListPins(c echo.Context) error {
	pins, err := h.pins.ListActive(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pins)
}

// GetDailyStatus reports whether the caller already created a pin today
func (h *PinHandler) GetDailyStatus(c echo.Context) error {
	created, err := h.pins.CreatedToday(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"created_today": created})
}

// ReportPin counts one report against a pin
func (h *PinHandler) ReportPin(c echo.Context) error {
	if err := h.pins.Report(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeactivatePin soft-deletes a pin from the map
func (h *PinHandler) DeactivatePin(c echo.Context) error {
	if err := h.pins.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
