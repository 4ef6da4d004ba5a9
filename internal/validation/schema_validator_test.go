package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"],
	"additionalProperties": false
}`

func newTestValidator() SchemaValidator {
	return NewSchemaValidator(fstest.MapFS{
		"person.schema.json": {Data: []byte(testSchema)},
		"broken.schema.json": {Data: []byte(`{"type": `)},
	})
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{"valid data", `{"name": "John", "age": 30}`, ""},
		{"valid without optional field", `{"name": "Jane"}`, ""},
		{"missing required field", `{"age": 25}`, "required"},
		{"wrong type for field", `{"name": "John", "age": "thirty"}`, "/age"},
		{"constraint violation", `{"name": "John", "age": -5}`, "minimum"},
		{"unknown field", `{"name": "John", "extra": 1}`, "additionalProperties"},
		{"invalid JSON", `{"name": "John", "age": }`, "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "person.schema.json")
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateValue(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateValue(map[string]any{"name": "Ada", "age": 36}, "person.schema.json"))

	err := v.ValidateValue(map[string]any{"age": 1}, "person.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")

	err = v.ValidateValue(map[string]any{"name": make(chan int)}, "person.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode document")
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateBytes([]byte(`{}`), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")

	err = v.ValidateBytes([]byte(`{}`), "broken.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse schema JSON")
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	v := newTestValidator().(*validator)

	require.NoError(t, v.ValidateBytes([]byte(`{"name": "a"}`), "person.schema.json"))
	first := v.schemas["person.schema.json"]
	require.NotNil(t, first)

	require.NoError(t, v.ValidateBytes([]byte(`{"name": "b"}`), "person.schema.json"))
	assert.Same(t, first, v.schemas["person.schema.json"])
}
