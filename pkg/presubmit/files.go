package presubmit

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/types"
)

// Collect reads the files among rels (relative to root, slash separated)
// that filter accepts. Missing files and directories are skipped. When
// changed is non-nil it restricts line checks to the listed lines.
func Collect(fs types.FS, root string, rels []string, filter *SourceFilter, changed map[string]map[int]bool) ([]File, error) {
	var files []File
	for _, rel := range rels {
		if !filter.Match(rel) {
			continue
		}

		path := filepath.Join(root, filepath.FromSlash(rel))
		info, err := fs.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", rel)
		}
		if info.IsDir() {
			continue
		}

		content, err := fs.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rel)
		}

		f := File{Path: rel, Content: content}
		if changed != nil {
			f.Changed = changed[rel]
			if f.Changed == nil {
				f.Changed = map[int]bool{}
			}
		}
		files = append(files, f)
	}
	return files, nil
}
