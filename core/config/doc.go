// Package config assembles the application configuration from partial
// configs owned by the packages they describe.
//
// Values are bound with Viper: struct tag defaults are registered first,
// then environment variables (optionally loaded from a .env file via
// godotenv) override them. Nested keys map to underscore-separated
// environment variables, e.g. DATABASE_HOST -> database.host and
// INGEST_NAME_THRESHOLD -> ingest.name_threshold.
package config
