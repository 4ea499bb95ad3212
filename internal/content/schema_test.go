package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_IsValidJSON(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(Schema(), &doc))
	assert.Equal(t, "object", doc["type"])

	// Callers get a copy
	Schema()[0] = 'x'
	assert.Equal(t, byte('{'), Schema()[0])
}

func TestCheckSchema_ValidProfile(t *testing.T) {
	errs, err := CheckSchema([]byte(sampleProfile))
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestCheckSchema_StructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"projects not a list", "name: Ada\ntitle: A\nemail: a@b.c\nabout: x\nskills: Go\nprojects: Engine\n", "projects"},
		{"missing required", "name: Ada\n", "(root)"},
		{"unknown key", "name: Ada\ntitle: A\nemail: a@b.c\nabout: x\nskills: Go\ncolour: teal\n", "(root)"},
		{"skills as list", "name: Ada\ntitle: A\nemail: a@b.c\nabout: x\nskills: [Go, Rust]\n", "skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := CheckSchema([]byte(tt.doc))
			require.NoError(t, err)
			require.NotEmpty(t, errs)

			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCheckSchema_EmptyDocument(t *testing.T) {
	errs, err := CheckSchema(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, errs, "an empty document misses every required field")
}

func TestCheckSchema_NotYAML(t *testing.T) {
	_, err := CheckSchema([]byte("name: [unterminated"))
	require.Error(t, err)
}
