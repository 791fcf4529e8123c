package aioconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// setNested places a value at the given path inside a nested map, creating
// intermediate maps as needed. A non-map value occupying an intermediate
// segment is replaced by a map.
func setNested(tree map[string]any, path []string, value any) {
	current := tree
	for _, segment := range path[:len(path)-1] {
		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		created := make(map[string]any)
		current[segment] = created
		current = created
	}
	current[path[len(path)-1]] = value
}

// childMap returns the nested map under key, or nil when the key is absent
// or holds a non-map value. Reads on the returned nil map are safe.
func childMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

// deepCopyTree copies a resolved value tree. Leaves are scalars, so a
// per-level map copy is a full deep copy.
func deepCopyTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if sub, isMap := value.(map[string]any); isMap {
			out[key] = deepCopyTree(sub)
		} else {
			out[key] = value
		}
	}
	return out
}

// navigate walks a dotted path through a nested map and returns the value
// found there. The second result is false when any segment is absent or a
// non-map intermediate is hit.
func navigate(tree map[string]any, path string) (any, bool) {
	if path == "" {
		return tree, true
	}

	var current any = tree
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// EnvironMap snapshots the process environment into a plain map. The engine
// itself never reads process globals; callers pass this (or any substitute)
// into Load, keeping resolution deterministic and testable.
func EnvironMap() map[string]string {
	environ := os.Environ()
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			m[key] = value
		}
	}
	return m
}

// atomicWriteFile writes data to path via a temp file and rename, so readers
// never observe a partially written file.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
