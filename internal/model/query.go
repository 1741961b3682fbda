package model

// ChatMessage is one turn of the conversation passed along with a query.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ProcessQueryRequest is the body of POST /api/v1/process_query.
type ProcessQueryRequest struct {
	Query                  string           `json:"query" binding:"required"`
	UserID                 string           `json:"user_id,omitempty"`
	PropertyDetails        *PropertyDetails `json:"property_details,omitempty"`
	TargetNegotiationPrice string           `json:"target_negotiation_price,omitempty"`
	Income                 *float64         `json:"income,omitempty"`
	CreditScore            *int             `json:"credit_score,omitempty"`
	DownPayment            *float64         `json:"down_payment,omitempty"`
	LoanAmount             *float64         `json:"loan_amount,omitempty"`
	PropertyType           string           `json:"property_type,omitempty"`
	ChatHistory            []ChatMessage    `json:"chat_history,omitempty"`
}

// SelectPropertyRequest is the body of POST /api/v1/select_property.
type SelectPropertyRequest struct {
	UserID       string          `json:"user_id" binding:"required"`
	PropertyData PropertyDetails `json:"property_data" binding:"required"`
}

// UpdatePropertyStatusRequest is the body of POST /api/v1/update_property_status.
type UpdatePropertyStatusRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	SelectionID string  `json:"selection_id" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	Notes       *string `json:"notes,omitempty"`
}

// RemovePropertyRequest is the body of POST /api/v1/remove_selected_property.
type RemovePropertyRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	SelectionID string `json:"selection_id" binding:"required"`
}

// PreferenceRequest is the body of POST /api/v1/save_preferences.
type PreferenceRequest struct {
	UserID      string            `json:"user_id" binding:"required"`
	Preferences string            `json:"preferences"`
	LastResults []PropertyDetails `json:"last_results,omitempty"`
}

// ResetRequest is the body of POST /api/v1/reset_user_data.
type ResetRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// SearchCriteria is the structured form of a free-text search query,
// extracted by the LLM (with a regex fallback when the LLM is unavailable).
type SearchCriteria struct {
	Location     string   `json:"location,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}
