package modules

import (
	"fmt"
	"strings"
)

// ValidateParams checks params against InputSchema.
// - Required fields: returns error if missing
// - Type check: verifies value matches declared property type
// - Enum check: string values must be one of the allowed set when declared
// - Defaults: absent optional properties with a Default are substituted
// - Bounds: numeric values are clamped into [Minimum, Maximum] when declared;
//   degenerate values (limit=0, limit=500) are clamped, never rejected
// Returns validated params (shallow copy) or error.
func ValidateParams(schema InputSchema, params map[string]any) (map[string]any, error) {
	validated := make(map[string]any, len(params))
	for k, v := range params {
		validated[k] = v
	}

	// Check required fields
	var missing []string
	for _, key := range schema.Required {
		val, exists := validated[key]
		if !exists || val == nil {
			missing = append(missing, key)
			continue
		}
		// Check for zero-value strings on required fields
		if s, ok := val.(string); ok && s == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required parameter(s): %s", strings.Join(missing, ", "))
	}

	// Type, enum and bounds checks against declared properties
	for key, val := range validated {
		prop, declared := schema.Properties[key]
		if !declared {
			// Extra params not in schema are passed through (lenient)
			continue
		}
		if val == nil {
			continue
		}
		if err := checkType(key, val, prop.Type); err != nil {
			return nil, err
		}
		if len(prop.Enum) > 0 {
			if s, ok := val.(string); ok && !containsString(prop.Enum, s) {
				return nil, fmt.Errorf("parameter %q: value %q is not one of [%s]",
					key, s, strings.Join(prop.Enum, ", "))
			}
		}
		if n, ok := val.(float64); ok {
			validated[key] = clamp(n, prop.Minimum, prop.Maximum)
		}
	}

	// Substitute defaults for absent optional properties
	for key, prop := range schema.Properties {
		if _, present := validated[key]; !present && prop.Default != nil {
			validated[key] = prop.Default
		}
	}

	return validated, nil
}

// checkType verifies that val matches the expected JSON Schema type.
func checkType(key string, val any, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := val.(string); !ok {
			return fmt.Errorf("parameter %q: expected string, got %T", key, val)
		}
	case "number", "integer":
		// JSON numbers arrive as float64
		if _, ok := val.(float64); !ok {
			return fmt.Errorf("parameter %q: expected number, got %T", key, val)
		}
	case "boolean":
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("parameter %q: expected boolean, got %T", key, val)
		}
	case "array":
		if _, ok := val.([]interface{}); !ok {
			return fmt.Errorf("parameter %q: expected array, got %T", key, val)
		}
	case "object":
		if _, ok := val.(map[string]interface{}); !ok {
			return fmt.Errorf("parameter %q: expected object, got %T", key, val)
		}
	// "" or unknown types: skip check (lenient)
	}
	return nil
}

func clamp(n float64, min, max *float64) float64 {
	if min != nil && n < *min {
		return *min
	}
	if max != nil && n > *max {
		return *max
	}
	return n
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// findTool looks up a tool by name from a tool list.
func findTool(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
