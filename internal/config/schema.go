package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrSchemaViolation indicates the merged settings do not match the
// configuration schema.
var ErrSchemaViolation = errors.New("configuration schema violation")

// configSchema constrains the shape of the merged settings map before
// unmarshalling. Value-level rules live in Config.Validate.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "stats": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "group_by": {"type": "string"},
        "include_merges": {"type": "boolean"},
        "limit": {"type": "integer"},
        "branch": {"type": "string"},
        "languages": {"type": "array", "items": {"type": "string"}},
        "format": {"type": "string"},
        "progress": {"type": "integer"}
      }
    },
    "cache": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "dir": {"type": "string"}
      }
    },
    "metrics": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "listen": {"type": "string"}
      }
    },
    "log": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string"},
        "json": {"type": "boolean"}
      }
    }
  }
}`

// validateConfigFile parses the YAML config file and checks its shape
// against configSchema.
func validateConfigFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var doc map[string]any

	unmarshalErr := yaml.Unmarshal(raw, &doc)
	if unmarshalErr != nil {
		return fmt.Errorf("parse config file %q: %w", path, unmarshalErr)
	}

	if doc == nil {
		return nil
	}

	return validateSchema(doc)
}

func validateSchema(settings map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	inputLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, inputLoader)
	if err != nil {
		return fmt.Errorf("run schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		descriptions = append(descriptions, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(descriptions, "; "))
}
