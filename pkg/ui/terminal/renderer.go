// Package terminal renders command results with the lipgloss styles of
// pkg/ui/styles.
package terminal

import (
	"io"

	"github.com/arthur-debert/webtc/pkg/ui/styles"
	"github.com/arthur-debert/webtc/pkg/ui/text"
)

// New creates a styled renderer.
func New(output io.Writer) *text.Renderer {
	return text.NewStyled(output, styles.Render)
}
