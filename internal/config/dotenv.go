package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadDotEnv loads each existing file in paths into the process environment.
// Variables that are already set are never overridden, and missing files
// are skipped. Empty paths are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading env file %s: %w", p, err)
		}
	}
	return nil
}

// NewEnvSource returns a viper instance that resolves keys against the
// process environment.
func NewEnvSource() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}
