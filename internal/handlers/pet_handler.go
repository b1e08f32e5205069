package handlers

import (
	"net/http"
	"strconv"

	"github.com/OyhamburoDev/luna-backend/internal/middleware"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PetHandler handles HTTP requests related to adoptable pets
type PetHandler struct {
	pets *services.PetService
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(pets *services.PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

// RegisterPetRoutes registers pet-related routes
func (h *PetHandler) RegisterPetRoutes(g *echo.Group) {
	g.POST("/pets", h.CreatePet)
	g.GET("/pets", h.GetFeed)
	g.GET("/pets/mine", h.GetMyPets)
	g.GET("/pets/:id", h.GetPet)
	g.DELETE("/pets/:id", h.DeletePet)
}

// CreatePet registers a new pet for adoption
func (h *PetHandler) CreatePet(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	var req models.CreatePetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.pets.Create(c.Request().Context(), uid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, pet)
}

// GetFeed returns recent pets for the discovery screen
func (h *PetHandler) GetFeed(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	pets, err := h.pets.Feed(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pets)
}

// GetMyPets returns the caller's own pets
func (h *PetHandler) GetMyPets(c echo.Context) error {
	pets, err := h.pets.ListByOwner(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pets)
}

// GetPet returns one pet by id
func (h *PetHandler) GetPet(c echo.Context) error {
	pet, err := h.pets.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pet)
}

// DeletePet removes a pet listing
func (h *PetHandler) DeletePet(c echo.Context) error {
	if err := h.pets.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
