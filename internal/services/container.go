// Package services provides the Film21 service and its dependency container.
package services

import (
	"github.com/amaumene/film21/internal/database"
	"github.com/amaumene/film21/internal/extractor"
	"github.com/amaumene/film21/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Film21     *Film21
	Extractors *extractor.Registry
	DB         database.Database
	Logger     logger.Logger
	Cleanup    *CleanupService
}
