package model

// ResultType discriminates the payload of a module outcome. The set is closed:
// the client picks its rendering branch solely on this value.
type ResultType string

const (
	ResultProperties     ResultType = "properties"
	ResultComparison     ResultType = "comparison_result"
	ResultInsights       ResultType = "selection_insights"
	ResultNegotiation    ResultType = "negotiation_result"
	ResultLegal          ResultType = "legal_guidance"
	ResultMortgage       ResultType = "mortgage_recommendation"
	ResultNeighborhood   ResultType = "neighborhood_insights"
	ResultMarketing      ResultType = "marketing_description"
	ResultError          ResultType = "error"
)

// Result is the outcome of routing one query: either an ordered list of
// properties, a free-text narrative, or an error message, discriminated by Type.
type Result struct {
	Type       ResultType
	Properties []PropertyDetails
	Text       string
	Message    string
}

// PropertiesResult wraps search results.
func PropertiesResult(props []PropertyDetails) Result {
	return Result{Type: ResultProperties, Properties: props}
}

// TextResult wraps an LLM-generated narrative under the given type.
func TextResult(t ResultType, text string) Result {
	return Result{Type: t, Text: text}
}

// ErrorResult wraps a human-readable failure message. Errors are terminal for
// the current action only, never fatal.
func ErrorResult(message string) Result {
	return Result{Type: ResultError, Message: message}
}

// Envelope is the uniform wrapper shared by all query responses:
// {status: success|error, data: {type, data|message}}.
type Envelope struct {
	Status string       `json:"status"`
	Data   EnvelopeData `json:"data"`
}

// EnvelopeData carries the tagged payload inside an envelope.
type EnvelopeData struct {
	Type    ResultType  `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ToEnvelope normalizes a Result into the wire envelope. The switch is
// exhaustive over the closed result set.
func (r Result) ToEnvelope() Envelope {
	switch r.Type {
	case ResultProperties:
		props := r.Properties
		if props == nil {
			props = []PropertyDetails{}
		}
		return Envelope{
			Status: "success",
			Data:   EnvelopeData{Type: ResultProperties, Data: props},
		}
	case ResultComparison, ResultInsights, ResultNegotiation, ResultLegal,
		ResultMortgage, ResultNeighborhood, ResultMarketing:
		return Envelope{
			Status: "success",
			Data:   EnvelopeData{Type: r.Type, Data: r.Text},
		}
	case ResultError:
		return Envelope{
			Status: "error",
			Data:   EnvelopeData{Type: ResultError, Message: r.Message},
		}
	default:
		return Envelope{
			Status: "error",
			Data:   EnvelopeData{Type: ResultError, Message: "unknown result type"},
		}
	}
}
