// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// A .env file in the working directory, when present, is loaded into the process
// environment before interpolation so API keys can stay out of the YAML.
package config
