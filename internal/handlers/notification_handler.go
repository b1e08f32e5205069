package handlers

import (
	"net/http"
	"strconv"

	"github.com/OyhamburoDev/luna-backend/internal/middleware"
	"github.com/OyhamburoDev/luna-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests related to the inbox
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the caller's inbox, paginated
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	uid := middleware.CurrentUserID(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := h.notifications.GetByRecipientID(uid, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// GetUnreadCount returns the number of unread inbox entries
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.GetUnreadCount(middleware.CurrentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification id")
	}
	if err := h.notifications.MarkAsRead(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead marks the caller's whole inbox as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllAsRead(middleware.CurrentUserID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return c.NoContent(http.StatusNoContent)
}
