package genconfig

import (
	"os"

	"github.com/arthur-debert/webtc/pkg/config"
	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/logging"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Options holds options for the genconfig command
type Options struct {
	// Root is the source root the config file is written to.
	Root string
	// Effective renders the resolved configuration instead of the
	// commented defaults. Requires Config.
	Effective bool
	Config    *config.Config
	Write     bool
	FS        types.FS
}

// Result holds the result of the 'genconfig' command.
type Result struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}

// GenConfig outputs or writes a configuration file
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	if opts.Effective {
		if opts.Config == nil {
			return nil, errors.New(errors.ErrInvalidInput, "effective configuration requested without a configuration")
		}
		rendered, err := config.Render(opts.Config)
		if err != nil {
			return nil, err
		}
		content = string(rendered)
	}

	result := &Result{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	targetPath := config.RootConfigPath(opts.Root)
	if _, err := opts.FS.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", targetPath)
	}

	if err := opts.FS.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", targetPath).
			WithDetail("path", targetPath)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}
