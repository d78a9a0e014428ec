package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON documents against named JSON schemas
type SchemaValidator interface {
	Register(schemaID string, schema []byte) error
	Validate(schemaID string, data []byte) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// Register compiles a schema and caches it under schemaID. Registering the same id
// twice is a no-op, which lets embedded schemas be registered from init paths freely.
func (v *validator) Register(schemaID string, schemaData []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.schemas[schemaID]; ok {
		return nil
	}

	var schemaJSON interface{}
	if err := json.Unmarshal(schemaData, &schemaJSON); err != nil {
		return fmt.Errorf("failed to parse schema %s: %w", schemaID, err)
	}

	if err := v.compiler.AddResource(schemaID, schemaJSON); err != nil {
		return fmt.Errorf("failed to add schema resource %s: %w", schemaID, err)
	}

	schema, err := v.compiler.Compile(schemaID)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaID, err)
	}

	v.schemas[schemaID] = schema
	return nil
}

// Validate checks data against a previously registered schema
func (v *validator) Validate(schemaID string, data []byte) error {
	v.mu.Lock()
	schema, ok := v.schemas[schemaID]
	v.mu.Unlock()
	if !ok {
		return fmt.Errorf("schema %s is not registered", schemaID)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(schemaID, err)
	}
	return nil
}

// formatValidationError flattens a jsonschema error tree into one line per failing location
func formatValidationError(schemaID string, err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}

	var lines []string
	collectErrors(validationErr, &lines)
	return fmt.Errorf("%s: schema validation failed:\n%s", schemaID, strings.Join(lines, "\n"))
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil {
		if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
			return fmt.Sprintf("  - at %s: %s", location, strings.Join(path, "."))
		}
	}
	return fmt.Sprintf("  - at %s: invalid", location)
}
