package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder settings.
type Config struct {
	Email    string `yaml:"email"    env:"SEEDER_EMAIL"    env-default:"demo@example.com"`
	Password string `yaml:"password" env:"SEEDER_PASSWORD" env-default:"password123"`
	Name     string `yaml:"name"     env:"SEEDER_NAME"     env-default:"Demo User"`
	// Reset deletes an existing demo user, and everything it owns, before seeding.
	Reset bool `yaml:"reset" env:"SEEDER_RESET"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	return &cfg, nil
}
