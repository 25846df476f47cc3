package config

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, Default().HistoryDepth, cfg.HistoryDepth)

	t.Run("twice", func(t *testing.T) {
		_, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0))
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})
}

func TestInitializeFs(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := InitializeFs(fs, "/etc/histsh", log.New(ioutil.Discard, "", 0))
	assert.Nil(t, err)
	assert.NotNil(t, cfg)

	contents, err := afero.ReadFile(fs, "/etc/histsh/config.yaml")
	assert.Nil(t, err)
	assert.Equal(t, defaultConfigData, contents)
}
