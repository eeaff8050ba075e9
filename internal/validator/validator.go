// Package validator decodes the model's enhance reply into an AnalysisResult.
package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/valpere/promptcraft/internal"
	"github.com/valpere/promptcraft/internal/failure"
	"github.com/valpere/promptcraft/internal/schema"
)

// requiredKeys are the top-level keys every enhance reply must carry.
var requiredKeys = []string{"analysis", "suggestions"}

var strictSchemaLoader = gojsonschema.NewStringLoader(schema.EnhanceStrict)

// Validator checks an enhance reply and decodes it.
//
// The default validator is shallow: it only requires the two top-level keys.
// A strict validator also checks the whole document against the strict
// schema (score ranges, criterion fields, at least one suggestion).
type Validator struct {
	strict bool
}

// New creates a shallow Validator.
func New() *Validator {
	return &Validator{}
}

// NewStrict creates a Validator that additionally enforces value constraints.
func NewStrict() *Validator {
	return &Validator{strict: true}
}

func (v *Validator) Strict() bool {
	return v.strict
}

// Decode parses raw as an AnalysisResult. Every failure is a
// MalformedResponse *failure.Error; a result is never returned alongside one.
func (v *Validator) Decode(raw string) (*internal.AnalysisResult, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, failure.Malformed("empty reply", nil)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil, failure.Malformed("reply is not a JSON object", err)
	}

	for _, key := range requiredKeys {
		value, ok := top[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, failure.Malformed(fmt.Sprintf("reply is missing %q", key), nil)
		}
	}

	if v.strict {
		if err := validateStrict(text); err != nil {
			return nil, err
		}
	}

	var result internal.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, failure.Malformed("reply does not match the analysis shape", err)
	}

	return &result, nil
}

func validateStrict(text string) error {
	res, err := gojsonschema.Validate(strictSchemaLoader, gojsonschema.NewStringLoader(text))
	if err != nil {
		return failure.Malformed("strict schema validation failed", err)
	}
	if res.Valid() {
		return nil
	}

	issues := make([]string, 0, len(res.Errors()))
	for _, desc := range res.Errors() {
		issues = append(issues, desc.String())
	}
	return failure.Malformed("reply violates schema: "+strings.Join(issues, "; "), nil)
}

// Decode is a shorthand for New().Decode.
func Decode(raw string) (*internal.AnalysisResult, error) {
	return New().Decode(raw)
}
