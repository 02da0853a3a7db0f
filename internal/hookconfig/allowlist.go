// ABOUTME: Loads the user-level allow-list of directories absolute imports may resolve under
// ABOUTME: Read from ~/.githooks/config.yaml; this package never writes it

package hookconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/githooks-go/githooks/internal/config"
	"github.com/githooks-go/githooks/internal/log"
)

// globalSettings is the shape of ~/.githooks/config.yaml. Editing this
// file is the external global user-config collaborator's job; the core
// only reads AllowlistDirs from it.
type globalSettings struct {
	AllowlistDirs []string `yaml:"allowlist_dirs"`
}

// LoadAllowlist reads the user-level allow-list of directories an absolute
// import path may resolve under. A missing file is not an error: it means
// no absolute imports are permitted.
func LoadAllowlist() ([]string, error) {
	path := config.GlobalConfigFile()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings globalSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		log.Warn("failed to parse %s, ignoring allow-list: %v", path, err)
		return nil, nil
	}
	return settings.AllowlistDirs, nil
}
