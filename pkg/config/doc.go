// Package config loads environment-backed configuration structs.
//
// Each component of the service owns a Config struct annotated with env tags;
// main loads them once at startup and passes them into constructors. A .env
// file in the working directory is honored when present, which keeps local
// development close to the containerized deployment.
//
// Usage:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
