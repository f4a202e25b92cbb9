package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB is the maximum accepted request body size in megabytes.
	// Spreadsheet uploads for large meets can run to a few megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
}
