package handlers

import (
	"net/http"
	"strconv"

	"github.com/OyhamburoDev/luna-backend/internal/legacy"
	"github.com/labstack/echo/v4"
)

// GeocodeHandler proxies the legacy geocoding endpoints for the map search
type GeocodeHandler struct {
	geocoder *legacy.GeocodeClient
}

// NewGeocodeHandler creates a new GeocodeHandler
func NewGeocodeHandler(geocoder *legacy.GeocodeClient) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

// RegisterGeocodeRoutes registers geocoding routes
func (h *GeocodeHandler) RegisterGeocodeRoutes(g *echo.Group) {
	g.GET("/geocode", h.Forward)
	g.GET("/geocode/reverse", h.Reverse)
}

// Forward resolves an address to coordinates
func (h *GeocodeHandler) Forward(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "address query parameter is required")
	}
	if !h.geocoder.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Geocoding is not available")
	}

	result, err := h.geocoder.Forward(c.Request().Context(), address)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Geocoding failed. Please try again.")
	}
	return c.JSON(http.StatusOK, result)
}

// Reverse resolves coordinates to an address
func (h *GeocodeHandler) Reverse(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lng query parameters are required")
	}
	if !h.geocoder.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Geocoding is not available")
	}

	result, err := h.geocoder.Reverse(c.Request().Context(), lat, lng)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Geocoding failed. Please try again.")
	}
	return c.JSON(http.StatusOK, result)
}
