//go:build !windows

package config

import "github.com/google/renameio/v2"

// writeFile replaces path atomically: temp file, fsync, rename.
func writeFile(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o644)
}
