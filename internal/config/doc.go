// Package config provides environment-based configuration.
//
// Loads from the process environment (main loads .env via godotenv first),
// applies defaults, and validates intervals and limits.
package config
