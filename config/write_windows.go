//go:build windows

package config

import "os"

// writeFile writes path in place; renameio has no Windows support.
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
