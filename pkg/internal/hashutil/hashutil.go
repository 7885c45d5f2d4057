// Package hashutil computes content digests for display. Comparisons of
// specs and markers are byte-exact and never go through a digest.
package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/arthur-debert/webtc/pkg/types"
)

// Digest returns the SHA256 digest of data as "sha256:<hex>".
func Digest(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// FileDigest returns the digest of the file at path.
func FileDigest(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Digest(data), nil
}
