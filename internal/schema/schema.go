// Package schema holds the JSON schema an enhance reply must follow.
//
// Enhance is the contract handed to the model. EnhanceStrict describes the
// same shape with value constraints and is only used for opt-in validation.
package schema

import (
	"encoding/json"
	"sync"
)

// Enhance is the canonical schema sent to the model for enhance requests.
// Every object closes its property set so providers can enforce it strictly.
const Enhance = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "analysis": {
      "type": "object",
      "additionalProperties": false,
      "description": "A detailed analysis of the user's prompt based on several criteria.",
      "properties": {
        "clarity": {
          "type": "object",
          "additionalProperties": false,
          "description": "Clarity score (1-10) and feedback.",
          "properties": {
            "score": { "type": "integer" },
            "feedback": { "type": "string" }
          },
          "required": ["score", "feedback"]
        },
        "specificity": {
          "type": "object",
          "additionalProperties": false,
          "description": "Specificity score (1-10) and feedback.",
          "properties": {
            "score": { "type": "integer" },
            "feedback": { "type": "string" }
          },
          "required": ["score", "feedback"]
        },
        "actionability": {
          "type": "object",
          "additionalProperties": false,
          "description": "Actionability score (1-10) and feedback.",
          "properties": {
            "score": { "type": "integer" },
            "feedback": { "type": "string" }
          },
          "required": ["score", "feedback"]
        },
        "context": {
          "type": "object",
          "additionalProperties": false,
          "description": "Context score (1-10) and feedback.",
          "properties": {
            "score": { "type": "integer" },
            "feedback": { "type": "string" }
          },
          "required": ["score", "feedback"]
        },
        "overall_quality": {
          "type": "integer",
          "description": "Overall quality score from 1 to 10."
        },
        "overall_feedback": {
          "type": "string",
          "description": "A summary of the prompt quality and key improvement areas."
        }
      },
      "required": ["clarity", "specificity", "actionability", "context", "overall_quality", "overall_feedback"]
    },
    "suggestions": {
      "type": "array",
      "description": "3 to 5 enhanced versions of the user's prompt.",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "title": {
            "type": "string",
            "description": "A short title for the suggestion, e.g., \"More Creative Version\"."
          },
          "prompt": {
            "type": "string",
            "description": "The full text of the suggested prompt."
          }
        },
        "required": ["title", "prompt"]
      }
    }
  },
  "required": ["analysis", "suggestions"]
}`

// EnhanceStrict adds score ranges and a non-empty suggestion list.
const EnhanceStrict = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "score": { "type": "integer", "minimum": 1, "maximum": 10 },
    "criterion": {
      "type": "object",
      "properties": {
        "score": { "$ref": "#/definitions/score" },
        "feedback": { "type": "string" }
      },
      "required": ["score", "feedback"]
    }
  },
  "type": "object",
  "properties": {
    "analysis": {
      "type": "object",
      "properties": {
        "clarity": { "$ref": "#/definitions/criterion" },
        "specificity": { "$ref": "#/definitions/criterion" },
        "actionability": { "$ref": "#/definitions/criterion" },
        "context": { "$ref": "#/definitions/criterion" },
        "overall_quality": { "$ref": "#/definitions/score" },
        "overall_feedback": { "type": "string" }
      },
      "required": ["clarity", "specificity", "actionability", "context", "overall_quality", "overall_feedback"]
    },
    "suggestions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "title": { "type": "string" },
          "prompt": { "type": "string" }
        },
        "required": ["title", "prompt"]
      }
    }
  },
  "required": ["analysis", "suggestions"]
}`

var (
	enhanceOnce sync.Once
	enhanceRaw  map[string]interface{}
)

// EnhanceMap returns Enhance decoded into a generic map, as expected by
// providers that embed the schema in a JSON request body. Callers must not
// modify the returned map.
func EnhanceMap() map[string]interface{} {
	enhanceOnce.Do(func() {
		if err := json.Unmarshal([]byte(Enhance), &enhanceRaw); err != nil {
			panic("schema: invalid enhance schema: " + err.Error())
		}
	})
	return enhanceRaw
}
