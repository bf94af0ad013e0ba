package config

import "time"

// Значения конфигурации по умолчанию.
const (
	DefaultAPIEndpoint = "https://api.telegram.org"
	DefaultHTTPTimeout = 90 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// DefaultConfigFile ищется в текущем каталоге, если путь не указан.
	DefaultConfigFile = "botctl.yml"
)
