package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/webtc/pkg/errors"
)

// Config is the resolved webtc configuration.
type Config struct {
	Paths      Paths       `koanf:"paths" toml:"paths"`
	Toolchain  Toolchain   `koanf:"toolchain" toml:"toolchain"`
	Installers []Installer `koanf:"installers" toml:"installers"`
	Presubmit  Presubmit   `koanf:"presubmit" toml:"presubmit"`
}

// Paths are relative to the source root unless absolute.
type Paths struct {
	Web   string `koanf:"web" toml:"web"`
	Apps  string `koanf:"apps" toml:"apps"`
	Build string `koanf:"build" toml:"build"`
}

// Toolchain names the executables and scripts of the Node toolchain.
type Toolchain struct {
	Node string `koanf:"node" toml:"node"`
	NPM  string `koanf:"npm" toml:"npm"`
	// Bower and Gulp are scripts run through node, relative to Paths.Web.
	Bower    string `koanf:"bower" toml:"bower"`
	Gulp     string `koanf:"gulp" toml:"gulp"`
	Gulpfile string `koanf:"gulpfile" toml:"gulpfile"`
	Help     string `koanf:"help" toml:"help"`
}

// Installer is one gated dependency install.
type Installer struct {
	Name    string     `koanf:"name" toml:"name"`
	Spec    string     `koanf:"spec" toml:"spec"`
	Marker  string     `koanf:"marker" toml:"marker"`
	Outputs []string   `koanf:"outputs" toml:"outputs"`
	Steps   [][]string `koanf:"steps" toml:"steps"`
	// Optional installers are skipped when their spec file is absent.
	Optional bool `koanf:"optional" toml:"optional,omitempty"`
}

// Presubmit configures the license and whitespace checks.
type Presubmit struct {
	// Template is the license header. YEARPATTERN on its first line matches
	// any year from Since to the current one.
	Template string   `koanf:"template" toml:"template,multiline"`
	Since    int      `koanf:"since" toml:"since"`
	Base     string   `koanf:"base" toml:"base"`
	Allow    []string `koanf:"allow" toml:"allow"`
	Deny     []string `koanf:"deny" toml:"deny"`
}

// Installer returns the installer with the given name.
func (c *Config) Installer(name string) (Installer, bool) {
	for _, inst := range c.Installers {
		if inst.Name == name {
			return inst, true
		}
	}
	return Installer{}, false
}

// Validate checks the configuration for values webtc cannot work with.
func (c *Config) Validate() error {
	if c.Paths.Web == "" || c.Paths.Apps == "" {
		return errors.New(errors.ErrConfigValid, "paths.web and paths.apps must be set")
	}
	if c.Toolchain.Node == "" || c.Toolchain.NPM == "" {
		return errors.New(errors.ErrConfigValid, "toolchain.node and toolchain.npm must be set")
	}

	seen := make(map[string]bool, len(c.Installers))
	for i, inst := range c.Installers {
		where := fmt.Sprintf("installers[%d]", i)
		if inst.Name == "" {
			return errors.Newf(errors.ErrConfigValid, "%s: name is required", where)
		}
		if seen[inst.Name] {
			return errors.Newf(errors.ErrConfigValid, "%s: duplicate installer %q", where, inst.Name)
		}
		seen[inst.Name] = true
		if inst.Spec == "" || inst.Marker == "" {
			return errors.Newf(errors.ErrConfigValid, "installer %q: spec and marker are required", inst.Name)
		}
		if inst.Spec == inst.Marker {
			return errors.Newf(errors.ErrConfigValid, "installer %q: marker must differ from spec", inst.Name)
		}
		if len(inst.Steps) == 0 {
			return errors.Newf(errors.ErrConfigValid, "installer %q: at least one step is required", inst.Name)
		}
		for _, step := range inst.Steps {
			if len(step) == 0 || strings.TrimSpace(step[0]) == "" {
				return errors.Newf(errors.ErrConfigValid, "installer %q: empty step", inst.Name)
			}
		}
	}

	if c.Presubmit.Since <= 0 {
		return errors.New(errors.ErrConfigValid, "presubmit.since must be a positive year")
	}
	for _, list := range [][]string{c.Presubmit.Allow, c.Presubmit.Deny} {
		for _, expr := range list {
			if _, err := regexp.Compile(expr); err != nil {
				return errors.Wrapf(err, errors.ErrConfigValid, "invalid presubmit pattern %q", expr)
			}
		}
	}
	return nil
}
