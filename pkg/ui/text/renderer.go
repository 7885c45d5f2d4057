// Package text renders command results as plain text. The layout is shared
// with the terminal renderer, which supplies a Styler.
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/webtc/pkg/commands/build"
	"github.com/arthur-debert/webtc/pkg/commands/check"
	"github.com/arthur-debert/webtc/pkg/commands/genconfig"
	"github.com/arthur-debert/webtc/pkg/commands/install"
	"github.com/arthur-debert/webtc/pkg/commands/status"
	"github.com/arthur-debert/webtc/pkg/presubmit"
)

// Styler applies a named style to s.
type Styler func(style, s string) string

func plain(_ string, s string) string { return s }

// Renderer writes results to an io.Writer.
type Renderer struct {
	output io.Writer
	style  Styler
}

// New creates a renderer without any styling.
func New(output io.Writer) *Renderer {
	return NewStyled(output, plain)
}

// NewStyled creates a renderer that passes every styled fragment through
// style.
func NewStyled(output io.Writer, style Styler) *Renderer {
	if style == nil {
		style = plain
	}
	return &Renderer{output: output, style: style}
}

// RenderMessage writes msg on its own line.
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// RenderResult renders a command result.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *install.Result:
		return r.renderInstall(v)
	case *status.Result:
		return r.renderStatus(v)
	case *check.Result:
		return r.renderCheck(v)
	case *build.Result:
		return r.renderBuild(v)
	case *genconfig.Result:
		return r.renderGenConfig(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.output, format, args...)
}

func (r *Renderer) installerName(name string) string {
	return r.style("Installer", fmt.Sprintf("%-8s", name))
}

func (r *Renderer) renderInstall(res *install.Result) error {
	r.printf("%s\n", r.style("Header", "Toolchain"))
	for _, inst := range res.Installers {
		r.printf("  %s %s\n", r.installerName(inst.Name), r.state(inst.Status, 0))
	}
	r.printf("%d installer(s) ran\n", res.Installed())
	return nil
}

func (r *Renderer) renderStatus(res *status.Result) error {
	root := r.style("FilePath", res.Root)
	if res.UsedFallback {
		root += " " + r.style("Warning", "(current directory)")
	}
	r.printf("Source root: %s\n", root)
	r.printf("%s\n", r.style("Header", "Installers"))
	for _, inst := range res.Installers {
		r.printf("  %s %s %s\n", r.installerName(inst.Name), r.state(inst.State, 8), r.style("Muted", inst.Spec))
	}
	if res.UpToDate() {
		r.printf("%s\n", r.style("Success", "toolchain is up to date"))
	} else {
		r.printf("%s\n", r.style("Warning", "toolchain will be installed on the next run"))
	}
	return nil
}

// state styles an installer state, padded to width, by how much attention
// it needs.
func (r *Renderer) state(s string, width int) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch s {
	case "current", "up-to-date":
		return r.style("Success", padded)
	case "installed":
		return r.style("Info", padded)
	case "skipped":
		return r.style("Muted", padded)
	default:
		return r.style("Warning", padded)
	}
}

func (r *Renderer) renderCheck(res *check.Result) error {
	errs, warns := 0, 0
	for _, f := range res.Findings {
		style := "Warning"
		if f.Severity == presubmit.Error {
			style = "Error"
			errs++
		} else {
			warns++
		}
		r.printf("%s\n", r.style(style, f.String()))
	}

	summary := fmt.Sprintf("%d file(s) checked", len(res.Files))
	if len(res.Findings) == 0 {
		r.printf("%s\n", r.style("Success", summary+", no findings"))
		return nil
	}
	r.printf("%s, %d error(s), %d warning(s)\n", summary, errs, warns)
	return nil
}

func (r *Renderer) renderBuild(res *build.Result) error {
	r.printf("Built %d app(s) into %s\n", len(res.Apps), r.style("FilePath", res.BuildDir))
	for _, app := range res.Apps {
		r.printf("  %s\n", app)
	}
	return nil
}

func (r *Renderer) renderGenConfig(res *genconfig.Result) error {
	if len(res.FilesWritten) == 0 {
		_, err := io.WriteString(r.output, res.ConfigContent)
		return err
	}
	for _, path := range res.FilesWritten {
		r.printf("Wrote %s\n", r.style("FilePath", path))
	}
	return nil
}
