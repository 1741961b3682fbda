package handler

import (
	"net/http"

	"homeadvisor/internal/model"
	"homeadvisor/internal/service"

	"github.com/gin-gonic/gin"
)

// QueryHandler handles the conversational entry point and the action mocks.
type QueryHandler struct {
	agent *service.Agent
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(agent *service.Agent) *QueryHandler {
	return &QueryHandler{agent: agent}
}

// ProcessQuery handles POST /api/v1/process_query. Every routed outcome,
// including module failures, comes back as HTTP 200 with a tagged envelope;
// only a malformed request body is a transport-level error.
func (h *QueryHandler) ProcessQuery(c *gin.Context) {
	var req model.ProcessQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.agent.ProcessQuery(c.Request.Context(), &req)
	c.JSON(http.StatusOK, result.ToEnvelope())
}

// ResetUserData handles POST /api/v1/reset_user_data.
func (h *QueryHandler) ResetUserData(c *gin.Context) {
	var req model.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.agent.ResetUserData(c.Request.Context(), req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not reset user data: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "All saved properties and conversation history have been cleared.",
	})
}

// BookVisit handles POST /api/v1/book_visit. Visit booking is mocked: no
// scheduling backend exists, the endpoint just acknowledges the request.
func (h *QueryHandler) BookVisit(c *gin.Context) {
	var req struct {
		UserID   string                 `json:"user_id"`
		Property *model.PropertyDetails `json:"property_details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	name := "the property"
	if req.Property != nil && req.Property.Name != "" {
		name = req.Property.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "A site visit for " + name + " has been requested. Our partner agent will contact you within 24 hours to confirm a time slot.",
	})
}

// HandlePaperwork handles POST /api/v1/handle_paperwork. Paperwork handling
// is mocked the same way as visit booking.
func (h *QueryHandler) HandlePaperwork(c *gin.Context) {
	var req struct {
		UserID   string                 `json:"user_id"`
		Property *model.PropertyDetails `json:"property_details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Paperwork assistance has been initiated. A documentation specialist will reach out with the checklist of required documents.",
	})
}
