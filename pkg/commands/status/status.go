package status

import (
	"os"

	"github.com/arthur-debert/webtc/pkg/config"
	"github.com/arthur-debert/webtc/pkg/gate"
	"github.com/arthur-debert/webtc/pkg/internal/hashutil"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/paths"
	"github.com/arthur-debert/webtc/pkg/toolchain"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Options defines the options for the Status command.
type Options struct {
	Config *config.Config
	Paths  paths.Paths
	FS     types.FS
}

// Installer describes the state of one installer.
type Installer struct {
	Name   string `json:"name"`
	Spec   string `json:"spec"`
	Marker string `json:"marker"`
	// State is "current", "stale", "missing", or "skipped" for an optional
	// installer without a spec file.
	State    string `json:"state"`
	Optional bool   `json:"optional"`
	// Digests of the spec and marker contents, when readable.
	SpecDigest   string `json:"specDigest,omitempty"`
	MarkerDigest string `json:"markerDigest,omitempty"`
}

// Result holds the result of the 'status' command.
type Result struct {
	Root         string      `json:"root"`
	UsedFallback bool        `json:"usedFallback"`
	Installers   []Installer `json:"installers"`
}

// UpToDate reports whether no installer would run.
func (r *Result) UpToDate() bool {
	for _, inst := range r.Installers {
		if inst.State != gate.StateCurrent.String() && inst.State != "skipped" {
			return false
		}
	}
	return true
}

// Status reports each installer's gate state without touching anything.
func Status(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("command", "Status").Msg("Executing command")

	result := &Result{
		Root:         opts.Paths.Root(),
		UsedFallback: opts.Paths.UsedFallback(),
	}

	g := gate.New(opts.FS)
	for _, inst := range toolchain.Installers(opts.Config, opts.Paths) {
		entry := Installer{
			Name:     inst.Spec.Name,
			Spec:     inst.Spec.SpecPath,
			Marker:   inst.Spec.MarkerPath,
			Optional: inst.Optional,
		}

		if inst.Optional {
			if _, err := opts.FS.Stat(inst.Spec.SpecPath); os.IsNotExist(err) {
				entry.State = "skipped"
				result.Installers = append(result.Installers, entry)
				continue
			}
		}

		state, err := g.Check(inst.Spec)
		if err != nil {
			return nil, err
		}
		entry.State = state.String()
		entry.SpecDigest, _ = hashutil.FileDigest(opts.FS, inst.Spec.SpecPath)
		if state != gate.StateMissing {
			entry.MarkerDigest, _ = hashutil.FileDigest(opts.FS, inst.Spec.MarkerPath)
		}
		result.Installers = append(result.Installers, entry)
	}
	return result, nil
}
