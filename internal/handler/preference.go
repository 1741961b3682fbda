package handler

import (
	"errors"
	"net/http"
	"time"

	"homeadvisor/internal/model"
	"homeadvisor/internal/store"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler handles saving and loading a user's preference notes.
type PreferenceHandler struct {
	store store.Store
}

// NewPreferenceHandler creates a new preference handler.
func NewPreferenceHandler(st store.Store) *PreferenceHandler {
	return &PreferenceHandler{store: st}
}

// SavePreferences handles POST /api/v1/save_preferences.
func (h *PreferenceHandler) SavePreferences(c *gin.Context) {
	var req model.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	prefs := &model.Preferences{
		Notes:       req.Preferences,
		LastResults: req.LastResults,
		SavedAt:     time.Now().UTC(),
	}
	if err := h.store.PutPreferences(c.Request.Context(), req.UserID, prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not save preferences: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Preferences saved.",
	})
}

// LoadPreferences handles GET /api/v1/load_preferences/:user_id. A user who
// has never saved anything gets a 404, not an empty object.
func (h *PreferenceHandler) LoadPreferences(c *gin.Context) {
	userID := c.Param("user_id")

	prefs, err := h.store.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNoPreferences) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "No saved preferences found. Nothing saved yet!",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not load preferences: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"preferences":  prefs.Notes,
		"last_results": prefs.LastResults,
		"saved_at":     prefs.SavedAt,
	})
}
