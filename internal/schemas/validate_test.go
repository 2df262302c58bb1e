package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["status"],
	"properties": {
		"status": {"type": "string"},
		"data": {
			"type": "object",
			"properties": {
				"nap_consistency_score": {"type": "number", "minimum": 0, "maximum": 100}
			}
		}
	}
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidDocument(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"status": "ok", "data": {"nap_consistency_score": 85}}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"data": {}}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_OutOfRangeValue(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"status": "ok", "data": {"nap_consistency_score": 140}}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeTempFile(t, "doc.json", `{"status": "ok"}`)

	err := ValidateJSON("testdata/nonexistent_schema.json", jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentDocument(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)

	err := ValidateJSON(schemaPath, "testdata/nonexistent_doc.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", testSchema)
	jsonPath := writeTempFile(t, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"status": "ok"}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"data": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "status", Message: "is required"},
			{Field: "data.gbp_rating", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "status")
	assert.Contains(t, errorMsg, "data.gbp_rating")
}

func TestValidateJSON_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["data"],
		"properties": {
			"data": {
				"type": "object",
				"required": ["knowledge_panel_detected"],
				"properties": {
					"knowledge_panel_detected": {"type": "boolean"}
				}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"data": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}
