package handlers

import (
	"net/http"

	"github.com/OyhamburoDev/luna-backend/internal/middleware"
	"github.com/OyhamburoDev/luna-backend/internal/models"
	"github.com/OyhamburoDev/luna-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes/toggle", h.ToggleLike)
	g.GET("/posts/:post_id/likes/status", h.GetLikeStatus)
	g.GET("/likes", h.GetLikedPosts)
}

// ToggleLike flips the caller's like on a post
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	uid := middleware.CurrentUserID(c)
	postID := c.Param("post_id")

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	toggled, err := h.likes.Toggle(c.Request().Context(), uid, postID, req.CurrentlyLiked)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "toggled": toggled})
}

// GetLikeStatus reports whether the caller likes the post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	uid := middleware.CurrentUserID(c)
	postID := c.Param("post_id")

	liked, err := h.likes.IsLiked(c.Request().Context(), uid, postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}

// GetLikedPosts returns the ids of all posts the caller likes
func (h *LikeHandler) GetLikedPosts(c echo.Context) error {
	ids, err := h.likes.LikedPostIDs(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_ids": ids})
}
