package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrAlreadyInitialized is returned when the directory already holds a
// configuration.
var ErrAlreadyInitialized = errors.New("configuration already exists")

// Initialize writes the default configuration into dir and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), dir, logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(dir, ConfigurationName)

	switch _, err := fsys.Stat(configPath); {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", configPath, ErrAlreadyInitialized)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	logger.Printf("Creating %s\n", configPath)
	if err := fsys.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0600); err != nil {
		return nil, err
	}

	return LoadFs(fsys, dir)
}
