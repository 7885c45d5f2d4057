package install

import (
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/toolchain"
)

// Options defines the options for the Install command.
type Options struct {
	// Installs are the outcomes of toolchain initialization, which already
	// did the work.
	Installs []toolchain.InstallResult
}

// Installer summarizes one installer for display.
type Installer struct {
	Name string `json:"name"`
	// Status is "installed", "up-to-date" or "skipped".
	Status string `json:"status"`
}

// Result holds the result of the 'install' command.
type Result struct {
	Installers []Installer `json:"installers"`
}

// Installed counts the installers that ran.
func (r *Result) Installed() int {
	n := 0
	for _, inst := range r.Installers {
		if inst.Status == "installed" {
			n++
		}
	}
	return n
}

// Install reports what toolchain initialization did. There is nothing left
// to do: the toolchain is installed before any command runs.
func Install(opts Options) *Result {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Msg("Executing command")

	result := &Result{Installers: make([]Installer, 0, len(opts.Installs))}
	for _, inst := range opts.Installs {
		status := inst.Outcome.String()
		if inst.Skipped {
			status = "skipped"
		}
		result.Installers = append(result.Installers, Installer{Name: inst.Name, Status: status})
	}
	return result
}
