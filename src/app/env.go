package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type envVars struct {
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
}

func mustLoadEnv() envVars {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	var env envVars
	if err := envconfig.Process("mcl", &env); err != nil {
		panic(err)
	}

	return env
}
