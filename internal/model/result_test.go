package model

import (
	"encoding/json"
	"testing"
)

func TestToEnvelope_Properties(t *testing.T) {
	result := PropertiesResult([]PropertyDetails{{ID: "p1", Name: "A"}})
	env := result.ToEnvelope()

	if env.Status != "success" {
		t.Errorf("status = %q, want success", env.Status)
	}
	if env.Data.Type != ResultProperties {
		t.Errorf("type = %s, want %s", env.Data.Type, ResultProperties)
	}
	props, ok := env.Data.Data.([]PropertyDetails)
	if !ok || len(props) != 1 {
		t.Errorf("payload = %#v, want one property", env.Data.Data)
	}
}

func TestToEnvelope_EmptyPropertiesIsArrayNotNull(t *testing.T) {
	env := PropertiesResult(nil).ToEnvelope()

	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var parsed struct {
		Data struct {
			Data []PropertyDetails `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Data.Data == nil {
		t.Error("empty result set must serialize as [], not null")
	}
}

func TestToEnvelope_TextTypes(t *testing.T) {
	textTypes := []ResultType{
		ResultComparison, ResultInsights, ResultNegotiation, ResultLegal,
		ResultMortgage, ResultNeighborhood, ResultMarketing,
	}

	for _, rt := range textTypes {
		env := TextResult(rt, "some narrative").ToEnvelope()
		if env.Status != "success" {
			t.Errorf("%s: status = %q, want success", rt, env.Status)
		}
		if env.Data.Type != rt {
			t.Errorf("%s: type = %s", rt, env.Data.Type)
		}
		if env.Data.Data != "some narrative" {
			t.Errorf("%s: payload = %v", rt, env.Data.Data)
		}
	}
}

func TestToEnvelope_Error(t *testing.T) {
	env := ErrorResult("it broke").ToEnvelope()

	if env.Status != "error" {
		t.Errorf("status = %q, want error", env.Status)
	}
	if env.Data.Type != ResultError {
		t.Errorf("type = %s, want %s", env.Data.Type, ResultError)
	}
	if env.Data.Message != "it broke" {
		t.Errorf("message = %q", env.Data.Message)
	}
	if env.Data.Data != nil {
		t.Errorf("error envelope must not carry a data payload, got %v", env.Data.Data)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []SelectionStatus{StatusInterested, StatusShortlisted, StatusVisited, StatusRejected, StatusPurchased} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false, want true", s)
		}
	}
	for _, s := range []SelectionStatus{"", "bought", "INTERESTED"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestIdentity(t *testing.T) {
	withID := PropertyDetails{ID: "p1", Link: "https://x"}
	if withID.Identity() != "p1" {
		t.Errorf("Identity = %q, want p1", withID.Identity())
	}
	linkOnly := PropertyDetails{Link: "https://x"}
	if linkOnly.Identity() != "https://x" {
		t.Errorf("Identity = %q, want link", linkOnly.Identity())
	}
}
