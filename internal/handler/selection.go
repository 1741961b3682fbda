package handler

import (
	"errors"
	"net/http"

	"homeadvisor/internal/model"
	"homeadvisor/internal/service"

	"github.com/gin-gonic/gin"
)

// SelectionHandler handles the selection-list CRUD endpoints.
type SelectionHandler struct {
	selections *service.SelectionManager
	agent      *service.Agent
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(selections *service.SelectionManager, agent *service.Agent) *SelectionHandler {
	return &SelectionHandler{selections: selections, agent: agent}
}

// SelectProperty handles POST /api/v1/select_property.
func (h *SelectionHandler) SelectProperty(c *gin.Context) {
	var req model.SelectPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	selected, total, err := h.selections.Add(c.Request.Context(), req.UserID, req.PropertyData)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateSelection) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "This property is already in your selected list.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not save selection: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"message":        "Property added to your selected list.",
		"selection_id":   selected.SelectionID,
		"total_selected": total,
	})
}

// GetSelectedProperties handles GET /api/v1/selected_properties/:user_id.
// The list and the summary come from the same snapshot, so the summary's
// totals always agree with the returned list.
func (h *SelectionHandler) GetSelectedProperties(c *gin.Context) {
	userID := c.Param("user_id")

	selections, summary, err := h.selections.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not load selections: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"selected_properties": selections,
			"summary":             summary,
		},
	})
}

// GetSelectionInsights handles GET /api/v1/selection_insights/:user_id.
func (h *SelectionHandler) GetSelectionInsights(c *gin.Context) {
	userID := c.Param("user_id")

	text, summary, err := h.agent.SelectionInsights(c.Request.Context(), userID,
		"What does my selection pattern say about my preferences?")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not generate insights: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"insights": text,
			"summary":  summary,
		},
	})
}

// UpdatePropertyStatus handles POST /api/v1/update_property_status.
func (h *SelectionHandler) UpdatePropertyStatus(c *gin.Context) {
	var req model.UpdatePropertyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.selections.UpdateStatus(c.Request.Context(), req.UserID, req.SelectionID,
		model.SelectionStatus(req.Status), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrSelectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "No selected property found with that ID.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Could not update status: " + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Property status updated to " + req.Status + ".",
	})
}

// RemoveSelectedProperty handles POST /api/v1/remove_selected_property.
func (h *SelectionHandler) RemoveSelectedProperty(c *gin.Context) {
	var req model.RemovePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	removed, err := h.selections.Remove(c.Request.Context(), req.UserID, req.SelectionID)
	if err != nil {
		if errors.Is(err, service.ErrSelectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "No selected property found with that ID.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not remove selection: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"message":          "Removed " + removed.Name + " from your selected list.",
		"removed_property": removed,
	})
}
