package crocket

import (
	"os"

	"gopkg.in/yaml.v3"
)

// manifestFile is the on-disk shape of a track manifest: a plain list of
// track names, for tools (cmd/crocket-ctfdump, scripts) that need a track
// table without a program compiled against the host's descriptor array.
// This never replaces the host's compile-time descriptor list (§1
// Non-goals: "variable set discovery at runtime" stays out of the engine
// itself) — it is purely a convenience for out-of-process tooling.
type manifestFile struct {
	Tracks []struct {
		Name string `yaml:"name"`
	} `yaml:"tracks"`
}

// LoadManifest reads a YAML track manifest and returns the track
// descriptors it names, each with a freshly allocated, unbound value slot
// (callers that only want to inspect or decode files, not sample them
// live, can ignore the Value field).
func LoadManifest(path string) ([]TrackDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("manifest read failed", "path", path, "err", err)
		return nil, err
	}
	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		logger.Warn("manifest parse failed", "path", path, "err", err)
		return nil, err
	}
	descriptors := make([]TrackDescriptor, len(mf.Tracks))
	for i, tr := range mf.Tracks {
		descriptors[i] = TrackDescriptor{Name: tr.Name, Value: new(float32)}
	}
	return descriptors, nil
}
