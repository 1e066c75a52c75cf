package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidTemplate = goerr.New("invalid template definition")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	TemplateIDKey = "template_id"
)
