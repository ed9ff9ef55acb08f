package main

import (
	"github.com/spf13/viper"
)

// Config is the process configuration, environment-driven with local
// defaults. SECRET has no default on purpose: the binary refuses to start
// without signing material.
type Config struct {
	AppEnv          string `mapstructure:"APP_ENV"`
	Port            string `mapstructure:"PORT"`
	DSN             string `mapstructure:"DATABASE_DSN"`
	Secret          string `mapstructure:"SECRET"`
	TokenExpiration int    `mapstructure:"TOKEN_EXPIRATION_HOURS"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "3003")
	viper.SetDefault("DATABASE_DSN", "file:bloglist.db?cache=shared&mode=rwc")
	viper.SetDefault("TOKEN_EXPIRATION_HOURS", 0)

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
