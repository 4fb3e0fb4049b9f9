// Package config loads the CLI configuration from the environment and
// optional .env files. It is the only package that reads the environment.
package config
