package export

import (
	"encoding/json"
	"testing"

	"github.com/modgarage/customizer/internal/valuation"
	"github.com/modgarage/customizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncode_JSON(t *testing.T) {
	d := valuation.DefaultDesign("adder")
	d.Name = "Fire Dragon"

	for _, format := range []string{"", "json", "JSON"} {
		data, ext, err := Encode(d, format)
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, ext)
		assert.Contains(t, string(data), "\n  \"name\": \"Fire Dragon\"")

		var back core.Design
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, d, back)
	}
}

func TestEncode_YAML(t *testing.T) {
	d := valuation.DefaultDesign("banshee")

	data, ext, err := Encode(d, "yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, ext)
	assert.Contains(t, string(data), "baseModel: banshee")
	assert.Contains(t, string(data), "engineLevel: 1")

	var back core.Design
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, _, err := Encode(core.Design{}, "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"Fire Dragon", "json", "Fire_Dragon.json"},
		{"Ice  Storm\tMk2", "yaml", "Ice_Storm_Mk2.yaml"},
		{"Solo", "json", "Solo.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(core.Design{Name: tt.name}, tt.ext))
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType(FormatJSON))
	assert.Equal(t, "application/yaml", ContentType(FormatYAML))
}
