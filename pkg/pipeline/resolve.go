package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDirectory maps user input to a competition directory. With an empty
// base, input is a path. Otherwise input is a competition name looked up as
// base/<name>/<relative>, the layout the scoring software writes its pages in.
func ResolveDirectory(input, base, relative string) (string, error) {
	input = strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(input))
	if input == "" {
		return "", fmt.Errorf("%w: no competition given", ErrDiscovery)
	}

	dir := input
	if base != "" {
		dir = filepath.Join(base, input, relative)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiscovery, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrDiscovery, dir)
	}
	return dir, nil
}
