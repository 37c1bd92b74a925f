package planfile

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError reports the first structural problem found in a plan
// document, with Path in dotted form ("timeline[0].deadline").
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid plan: %s", e.Message)
	}
	return fmt.Sprintf("invalid plan: %s: %s", e.Path, e.Message)
}

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("plan.schema.json", strings.NewReader(planSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("plan.schema.json")
}

// Validate checks standard JSON bytes against the plan schema.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid plan JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return mapSchemaError(err)
	}
	return nil
}

func mapSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Message: err.Error()}
	}
	var result *ValidationError
	collectLeaf(ve, &result)
	if result == nil {
		result = &ValidationError{Message: ve.Message}
	}
	return result
}

// collectLeaf walks to the deepest cause, which carries the most specific
// instance location.
func collectLeaf(err *jsonschema.ValidationError, result **ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*result = &ValidationError{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		}
		return
	}
	for _, cause := range err.Causes {
		if *result == nil {
			collectLeaf(cause, result)
		}
	}
}

// pointerToPath converts a JSON pointer ("/outline/0/title") to dotted form
// ("outline[0].title").
func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(pointer, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if isIndex(part) {
			fmt.Fprintf(&b, "[%s]", part)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
