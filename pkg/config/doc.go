// Package config loads typed configuration from the process environment.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Each configuration type is
// parsed at most once per process and served from a cache afterwards, which is
// how the client honours "base URL is read once at startup": later changes to
// the environment are not observed unless Reset is called.
//
// # Usage
//
//	type Settings struct {
//	    BaseURL string `env:"API_BASE_URL,required"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//	    return err
//	}
//
// LoadEnvFiles can be called before Load to read specific .env files; when it
// is not called, Load reads ./.env if present.
//
// # Errors
//
//   - ErrParsingConfig – env.Parse rejected the environment.
//   - ErrConfigNotLoaded – the cached value disappeared between parse and read.
//   - ErrNilPointer – nil pointer passed to Load.
//   - ErrEnvFile – an explicitly requested .env file could not be read.
package config
