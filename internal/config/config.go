package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Configuration struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
		Port string `envconfig:"SERVER_PORT" default:"8080"`
	}
	Puzzles struct {
		// loaded at startup when set
		Path string `envconfig:"PUZZLES_PGN_PATH"`
	}
	Log struct {
		Level       string `envconfig:"LOG_LEVEL" default:"info"`
		Development bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
	}
}

func InitConfig() (*Configuration, error) {
	var config Configuration
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Configuration) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
