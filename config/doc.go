// Package config loads service configuration with Viper.
//
// Values come from a YAML file, then a .env file loaded with godotenv,
// then the process environment, each source overriding the previous one.
// Environment variables map onto nested keys by their underscores, so
// REST_TIMEOUT=5s sets rest.timeout:
//
//	var cfg config.ServiceConfig
//	if err := config.Load("orders", &cfg); err != nil {
//		return err
//	}
package config
