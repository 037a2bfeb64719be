package ports

import "go.trai.ch/dbridge/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd looking for the configuration file and returns the settings.
	// Defaults are returned when no file exists.
	Load(cwd string) (*domain.Settings, error)
}
