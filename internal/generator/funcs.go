package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Quoting for generated source
		"js":   JSString,  // Ada → "Ada"
		"jsx":  JSXText,   // a < b → {"a < b"}
		"json": JSONValue, // []string{"Go"} → [ "Go" ] (indented)

		// String manipulation
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"join":     strings.Join,
		"contains": strings.Contains,
		"replace":  strings.ReplaceAll,

		// Utilities
		"dict":    Dict,    // Create map for passing multiple values
		"default": Default, // Provide default value if nil/empty
	}
}

// JSString quotes s as a JavaScript string literal. JSON string syntax is a
// subset of JavaScript's, and encoding/json also escapes U+2028 and U+2029,
// which older engines reject inside literals.
func JSString(s string) (string, error) {
	return encode(s, "")
}

// JSXText wraps s in a JSX expression container so it renders as text.
// Braces, angle brackets and quotes in s cannot break the surrounding markup.
func JSXText(s string) (string, error) {
	lit, err := JSString(s)
	if err != nil {
		return "", err
	}
	return "{" + lit + "}", nil
}

// JSONValue encodes v as indented JSON, usable as a JavaScript literal
func JSONValue(v any) (string, error) {
	return encode(v, "  ")
}

func encode(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Dict creates a map from alternating key-value pairs
// Usage in template: [[ template "partial" (dict "key1" val1 "key2" val2) ]]
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns defaultVal if val is nil, an empty string or an empty
// string slice. Numeric zero is kept.
func Default(defaultVal, val any) any {
	switch v := val.(type) {
	case nil:
		return defaultVal
	case string:
		if v == "" {
			return defaultVal
		}
	case []string:
		if len(v) == 0 {
			return defaultVal
		}
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	}
	return val
}
