// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// It uses Viper for the file and environment layers and godotenv for .env
// files. Environment variables override file values: SCRIBE_API_KEY maps to
// scribe.api_key, LOGGING_LEVEL to logging.level.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("scribe", &cfg, config.WithConfigFile(path))
package config
