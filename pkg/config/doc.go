// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env field tags, with optional .env
// support via godotenv for local development.
//
// Each package owning configuration declares its own struct (see
// tenantdb.Config, httpserver.Config, redis.Config) and main wires them:
//
//	var dbCfg tenantdb.Config
//	config.MustLoad(&dbCfg)
package config
