package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name is usable as a single file or directory
// name. Path separators and dots are rejected, which also rules out
// traversal and extension tricks.
func ValidateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
