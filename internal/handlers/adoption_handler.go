package handlers

import (
	"log"
	"net/http"

	"github.com/OyhamburoDev/luna-backend/internal/middleware"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdoptionHandler handles HTTP requests related to adoption requests
type AdoptionHandler struct {
	adoptions *services.AdoptionService
}

// NewAdoptionHandler creates a new AdoptionHandler
func NewAdoptionHandler(adoptions *services.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptions: adoptions}
}

// RegisterAdoptionRoutes registers adoption-related routes
func (h *AdoptionHandler) RegisterAdoptionRoutes(g *echo.Group) {
	g.POST("/adoptions", h.Submit)
	g.GET("/adoptions/received", h.ListReceived)
	g.GET("/adoptions/mine", h.ListMine)
	g.DELETE("/adoptions/:id", h.Delete)
	g.POST("/adoptions/:id/approve", h.Approve)
	g.POST("/adoptions/:id/reject", h.Reject)
}

// Submit handles a new adoption request submission
func (h *AdoptionHandler) Submit(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	var req models.SubmitAdoptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	receipt, err := h.adoptions.Submit(c.Request().Context(), uid, req.PetID, models.ApplicantProfile{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		Housing:    req.Housing,
		HasYard:    req.HasYard,
		OtherPets:  req.OtherPets,
		Motivation: req.Motivation,
	})
	if err != nil {
		return httpError(err)
	}

	// Counter drift is tolerated; the request is submitted either way.
	if receipt.CounterWarning != nil {
		log.Printf("adoption counter update failed for user %s: %v", uid, receipt.CounterWarning)
	}

	return c.JSON(http.StatusCreated, echo.Map{"request_id": receipt.RequestID})
}

// ListReceived returns requests for pets the caller owns
func (h *AdoptionHandler) ListReceived(c echo.Context) error {
	requests, err := h.adoptions.ListOwnedRequests(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// ListMine returns the caller's own requests
func (h *AdoptionHandler) ListMine(c echo.Context) error {
	requests, err := h.adoptions.ListMyRequests(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// Delete retracts a request by id
func (h *AdoptionHandler) Delete(c echo.Context) error {
	if err := h.adoptions.DeleteRequest(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Approve moves a request to approved
func (h *AdoptionHandler) Approve(c echo.Context) error {
	return h.resolve(c, true)
}

// Reject moves a request to rejected
func (h *AdoptionHandler) Reject(c echo.Context) error {
	return h.resolve(c, false)
}

func (h *AdoptionHandler) resolve(c echo.Context, approved bool) error {
	if err := h.adoptions.Resolve(c.Request().Context(), c.Param("id"), approved); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
