package crocket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestParsesTrackNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	yaml := "tracks:\n  - name: cam.fov\n  - name: light.intensity\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	descriptors, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "cam.fov", descriptors[0].Name)
	assert.Equal(t, "light.intensity", descriptors[1].Name)
	assert.NotNil(t, descriptors[0].Value)
	assert.NotSame(t, descriptors[0].Value, descriptors[1].Value)
}

func TestLoadManifestMissingFileErrors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
