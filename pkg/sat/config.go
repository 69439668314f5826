package sat

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ConfigPath is where the CLI looks for solver executables' paths
var ConfigPath = "./config.json"

// Config maps every external solver to the executable that runs it. Empty entries fall back to the solver's default executable name (resolved through PATH)
type Config struct {
	KissatPath        string `mapstructure:"kissatPath"`
	CadicalPath       string `mapstructure:"cadicalPath"`
	CryptominisatPath string `mapstructure:"cryptominisatPath"`
	MinisatPath       string `mapstructure:"minisatPath"`
	GlucoseSimpPath   string `mapstructure:"glucoseSimpPath"`
	GlucoseSyrupPath  string `mapstructure:"glucoseSyrupPath"`
}

func LoadConfig(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "cannot read config file %q", path)
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config file %q", path)
	}

	var config Config
	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &metadata,
		Result:   &config,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot build config decoder")
	}
	if err := decoder.Decode(configJson); err != nil {
		return Config{}, errors.Wrapf(err, "cannot decode config file %q", path)
	}
	for _, key := range metadata.Unused {
		log.Warnf("ignoring unknown config key %q", key)
	}

	return config, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to the default executable names when the file does not exist
func LoadConfigOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debugf("config file %q not found, using default solver executables", path)
		return Config{}, nil
	}
	return LoadConfig(path)
}

func executable(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
