package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string        `yaml:"env" env-default:"local"`
	Admin       string        `yaml:"admin" env-required:"true"`
	TokenSecret string        `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	Storage     StorageConfig `yaml:"storage"`
	HTTP        HTTPConfig    `yaml:"http"`
}

type StorageConfig struct {
	// Driver selects the storage adapter: postgres or memory.
	Driver string `yaml:"driver" env-default:"postgres"`
	Path   string `yaml:"path"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env-default:"8082"`
}

func Load(path string) *Config {
	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}
