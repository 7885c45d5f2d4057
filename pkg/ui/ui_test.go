package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/webtc/pkg/commands/check"
	"github.com/arthur-debert/webtc/pkg/presubmit"
	"github.com/arthur-debert/webtc/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{"terminal", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"auto with buffer", ui.FormatAuto, false},
		{"invalid", ui.Format(999), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	res := &check.Result{
		Committing: true,
		Files:      []string{"a.go"},
		Findings: []presubmit.Result{
			{Check: presubmit.NameWhitespace, File: "a.go", Line: 2, Message: "line ends with whitespace", Severity: presubmit.Error},
		},
	}
	require.NoError(t, renderer.RenderResult(res))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["committing"])

	findings := decoded["findings"].([]interface{})
	require.Len(t, findings, 1)
	finding := findings[0].(map[string]interface{})
	assert.Equal(t, "error", finding["severity"])
	assert.Equal(t, "stray-whitespace", finding["check"])
	assert.Equal(t, float64(2), finding["line"])
}

func TestJSONRenderer_Message(t *testing.T) {
	var buf bytes.Buffer
	renderer, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderMessage("done"))
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}

func TestTextRendererForAutoBuffer(t *testing.T) {
	var buf bytes.Buffer
	renderer, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderMessage("plain"))
	assert.Equal(t, "plain\n", buf.String())
}
