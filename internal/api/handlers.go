package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rental-alert-service/internal/alerts"
	"rental-alert-service/internal/db"
	"rental-alert-service/internal/logging"
	"rental-alert-service/internal/models"
)

// PropertyStore is the subset of the db layer the property handlers need.
type PropertyStore interface {
	ListProperties(ctx context.Context, userID string) ([]models.Property, error)
	GetProperty(ctx context.Context, id, userID string) (models.Property, error)
	CreateProperty(ctx context.Context, p models.Property) error
	UpdateProperty(ctx context.Context, id, userID string, upd models.PropertyUpdate) (models.Property, error)
	DeleteProperty(ctx context.Context, id, userID string) error
}

type Handler struct {
	alerts alerts.Computer
	store  PropertyStore
	cache  *alerts.Cache
	logger *logging.Logger
}

// NewHandler wires the alert computer (usually the cache in front of the
// engine) and the property store. cache may be nil when no invalidation on
// property mutations is wanted.
func NewHandler(computer alerts.Computer, store PropertyStore, cache *alerts.Cache, logger *logging.Logger) *Handler {
	return &Handler{alerts: computer, store: store, cache: cache, logger: logger}
}

func (h *Handler) invalidateAlerts(userID string) {
	if h.cache != nil {
		h.cache.Invalidate(userID)
	}
}

// GetAlertsByUserID computes the alert batch for a user. Failures are
// reported as errors, never as an empty list: "no alerts" and "could not
// determine alerts" are different answers.
func (h *Handler) GetAlertsByUserID(c *gin.Context) {
	userID := c.Param("user_id")

	list, err := h.alerts.ComputeAlerts(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, alerts.ErrMissingUserID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		case errors.Is(err, alerts.ErrTimeout):
			h.logger.Errorf("Alert computation timed out for user %s: %v", userID, err)
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Alerts unavailable, retry later"})
		case errors.Is(err, alerts.ErrUnavailable):
			h.logger.Errorf("All alert sources failed for user %s: %v", userID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Alerts unavailable, retry later"})
		default:
			h.logger.Errorf("Alert computation failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute alerts"})
		}
		return
	}

	h.logger.Infof("Computed %d alerts for user %s", len(list), userID)
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPropertiesByUserID(c *gin.Context) {
	userID := c.Param("user_id")

	properties, err := h.store.ListProperties(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to list properties for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	h.logger.Infof("Retrieved %d properties for user %s", len(properties), userID)
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id := c.Param("id")
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	property, err := h.store.GetProperty(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.Errorf("Failed to get property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req models.PropertyCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request body for property: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	property := models.Property{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Rent:      req.Rent,
		Status:    req.Status,
		CreatedAt: time.Now(),
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusVacant
	}

	if err := h.store.CreateProperty(c.Request.Context(), property); err != nil {
		h.logger.Errorf("Failed to create property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	h.invalidateAlerts(property.UserID)
	h.logger.Infof("Created property %s for user %s", property.ID, property.UserID)
	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var upd models.PropertyUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.logger.Errorf("Invalid request body for property update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	property, err := h.store.UpdateProperty(c.Request.Context(), id, userID, upd)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.Errorf("Failed to update property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	h.invalidateAlerts(userID)
	h.logger.Infof("Updated property %s for user %s", id, userID)
	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := h.store.DeleteProperty(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.Errorf("Failed to delete property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	h.invalidateAlerts(userID)
	h.logger.Infof("Deleted property %s for user %s", id, userID)
	c.Status(http.StatusNoContent)
}
