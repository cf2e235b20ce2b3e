package categorize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// modelResponse is the validated-but-partial shape of the model's JSON
// answer. Fields are pointers so the defaulting rules can distinguish
// "absent" from "present but empty". Nothing past this boundary trusts the
// raw JSON shape.
type modelResponse struct {
	Type        *string
	Amount      *decimal.Decimal
	Currency    *string
	Category    *string
	Description *string
}

// parseModelResponse cleans and parses the raw model text into a
// modelResponse. It fails on anything that is not a JSON object; individual
// missing or mistyped fields are tolerated and surface as nil.
func parseModelResponse(raw string) (modelResponse, error) {
	clean := cleanModelJSON(raw)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return modelResponse{}, fmt.Errorf("parseModelResponse: unmarshal JSON: %w", err)
	}

	return modelResponse{
		Type:        getOptionalStringField(obj, "type"),
		Amount:      getOptionalNumberField(obj, "amount"),
		Currency:    getOptionalStringField(obj, "currency"),
		Category:    getOptionalStringField(obj, "category"),
		Description: getOptionalStringField(obj, "description"),
	}, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the "raw JSON only" instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still junk around the JSON object,
	// keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

func getOptionalStringField(m map[string]interface{}, key string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	val, ok := v.(string)
	if !ok {
		return nil
	}
	s := strings.TrimSpace(val)
	if s == "" {
		return nil
	}
	return &s
}

// getOptionalNumberField accepts both a JSON number and a numeric string;
// models switch between the two freely.
func getOptionalNumberField(m map[string]interface{}, key string) *decimal.Decimal {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case float64:
		d := decimal.NewFromFloat(val)
		return &d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}
