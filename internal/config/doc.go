// Package config loads and validates application configuration from
// environment variables (prefix FOCUS_) and an optional config file,
// using viper for loading and validator for validation.
package config
