package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config provides the location of the on-disk document store.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the store path from a .signage config file or the
// SIGNAGE_PATH environment variable, defaulting to ~/.signage.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.signage.db")
	viper.SetConfigName(".signage") // .yaml is implicit
	viper.SetEnvPrefix("SIGNAGE")
	viper.AutomaticEnv()

	if override := os.Getenv("SIGNAGE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// PathConfig pins the store to an explicit directory; used by tests and the
// --path flag.
func PathConfig(path string) Config {
	return &fileConfig{Path: path}
}
