// Package config manages application configuration for the StudioHub API.
//
// Configuration is read from environment variables with development-friendly
// defaults; a local .env file is honored via godotenv. Validate collects
// every failure into one joined error so a misconfigured deployment reports
// all problems at once instead of one per restart.
//
// Groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: RSA key paths and token lifetime
//   - AdminConfig: super admin identity
//   - JobsConfig: background processor intervals
package config
