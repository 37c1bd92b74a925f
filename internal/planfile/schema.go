// Package planfile loads and saves plan documents: JSON (with comments and
// trailing commas allowed) holding an outline forest and a phase timeline.
package planfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/avermeer/scribe/internal/contract"
)

// Document is the on-disk plan shape. Either half may be absent; loading a
// file with only an outline leaves the timeline untouched.
type Document struct {
	Outline  []contract.SectionSpec `json:"outline,omitempty"`
	Timeline []contract.PhaseSpec   `json:"timeline,omitempty"`
}

// planSchema is the JSON schema every document is checked against before
// unmarshalling. Structural problems surface here with a field path instead
// of as a zero-valued struct downstream.
const planSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "outline": {"type": "array", "items": {"$ref": "#/$defs/section"}},
    "timeline": {"type": "array", "items": {"$ref": "#/$defs/phase"}}
  },
  "additionalProperties": false,
  "$defs": {
    "section": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "summary": {"type": "string"},
        "subsections": {"type": "array", "items": {"$ref": "#/$defs/section"}}
      },
      "additionalProperties": false
    },
    "phase": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "start_date": {"$ref": "#/$defs/date"},
        "end_date": {"$ref": "#/$defs/date"},
        "deadline": {"$ref": "#/$defs/date"},
        "tasks": {"type": "array", "items": {"$ref": "#/$defs/task"}}
      },
      "additionalProperties": false
    },
    "task": {
      "type": "object",
      "required": ["description"],
      "properties": {
        "description": {"type": "string", "minLength": 1},
        "completed": {"type": "boolean"}
      },
      "additionalProperties": false
    },
    "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
  }
}`

// Load reads, standardizes, validates, and parses a plan file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse accepts raw plan bytes, JSONC included.
func Parse(data []byte) (*Document, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid plan JSON: %w", err)
	}
	if err := Validate(standardized); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	return &doc, nil
}
