package ports

import "go.trai.ch/inkcache/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. An empty path looks for the
	// default file in the working directory and falls back to defaults when
	// it does not exist.
	Load(path string) (domain.Settings, error)
}
