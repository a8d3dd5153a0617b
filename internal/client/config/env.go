package config

import "github.com/caarlos0/env/v6"

// parseEnv overlays cfg with PHOTOKEEPER_* environment variables declared
// via the env struct tags on Config. Unset variables leave the current
// values untouched.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
