package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/giantswarm/ephemera/pkg/logging"
)

const imagesDir = "images"

// Storage keeps named image documents in the images/
// subdirectory of a configuration directory.
type Storage struct {
	mu         sync.RWMutex
	configPath string // when empty, the user config directory is used
}

// NewStorage creates a Storage in the default configuration directory.
func NewStorage() *Storage {
	return &Storage{}
}

// NewStorageWithPath creates a Storage rooted at configPath.
func NewStorageWithPath(configPath string) *Storage {
	return &Storage{
		configPath: configPath,
	}
}

// Save writes data as the document for name.
func (ds *Storage) Save(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	dir, err := ds.imagesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	filePath := filepath.Join(dir, sanitizeFilename(name)+".yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	logging.Info("Storage", "Saved image %s to %s", name, filePath)
	return nil
}

// Load returns the document stored for name. Both .yaml and .yml files are
// found.
func (ds *Storage) Load(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	ds.mu.RLock()
	defer ds.mu.RUnlock()

	dir, err := ds.imagesDir()
	if err != nil {
		return nil, err
	}

	base := sanitizeFilename(name)
	for _, ext := range []string{".yaml", ".yml"} {
		filePath := filepath.Join(dir, base+ext)
		data, err := os.ReadFile(filePath)
		if err == nil {
			logging.Debug("Storage", "Loaded image %s from %s", name, filePath)
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
	}
	return nil, fmt.Errorf("image %s not found", name)
}

// Delete removes the document for name.
func (ds *Storage) Delete(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	dir, err := ds.imagesDir()
	if err != nil {
		return err
	}

	filePath := filepath.Join(dir, sanitizeFilename(name)+".yaml")
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("image %s not found", name)
	}
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}

	logging.Info("Storage", "Deleted image %s from %s", name, filePath)
	return nil
}

// List returns the names of all stored documents, sorted.
func (ds *Storage) List() ([]string, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	dir, err := ds.imagesDir()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		files, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
		}
		for _, f := range files {
			base := filepath.Base(f)
			names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (ds *Storage) imagesDir() (string, error) {
	configDir := ds.configPath
	if configDir == "" {
		dir, err := GetUserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get configuration directory: %w", err)
		}
		configDir = dir
	}
	return filepath.Join(configDir, imagesDir), nil
}

// sanitizeFilename maps an image name such as "postgres:11-alpine" onto a
// safe file name.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", ".", "_", " ", "_",
	)
	sanitized := replacer.Replace(strings.TrimSpace(name))

	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		sanitized = "unnamed"
	}
	return sanitized
}
