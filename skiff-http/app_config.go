package skiff_http

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// loadConfigFile decodes ConfigFile onto the application. The format is
// chosen by extension; keys not present in the file leave their fields
// untouched.
func (a *Application[State]) loadConfigFile() error {
	data, err := os.ReadFile(a.ConfigFile)
	if err != nil {
		return err
	}

	m := map[string]interface{}{}
	switch ext := strings.ToLower(filepath.Ext(a.ConfigFile)); ext {
	case ".json":
		err = jsonUnmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = fmt.Errorf("unsupported configuration file extension: %s", ext)
	}
	if err != nil {
		return err
	}
	return mapstructure.Decode(m, a)
}
