package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultDataRoot = "data"
	DefaultWebRoot  = "web"
)

// ResolveDataRoot returns the directory holding the detection log and the registry files.
func ResolveDataRoot() string {
	root := os.Getenv("SAFETY_DATA_ROOT")
	if root == "" {
		root = DefaultDataRoot
	}
	return root
}

// ResolveWebRoot returns the directory holding templates/ and static/.
func ResolveWebRoot() string {
	root := os.Getenv("SAFETY_WEB_ROOT")
	if root == "" {
		root = DefaultWebRoot
	}
	return root
}

// ResolveConfigPath returns the path of the YAML configuration file.
func ResolveConfigPath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := os.Getenv("SAFETY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join("config", "default.yaml")
}

// EnsureDirs creates each directory (and parents) if missing.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SafeJoin joins path elements and ensures the result is within the base directory (no traversal).
func SafeJoin(base string, elements ...string) (string, error) {
	for _, el := range elements {
		if filepath.IsAbs(el) || strings.HasPrefix(el, `\\`) || strings.HasPrefix(el, "/") {
			return "", fmt.Errorf("path traversal attempt detected: absolute path not allowed in elements: %s", el)
		}
	}
	joined := filepath.Join(append([]string{base}, elements...)...)

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}

	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absBase, absJoined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt detected: %s is outside %s", absJoined, absBase)
	}

	return absJoined, nil
}
