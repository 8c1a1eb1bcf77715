//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/printops/inkwell/internal/catalog/delivery/http"
	"github.com/printops/inkwell/internal/catalog/domain"
	"github.com/printops/inkwell/internal/catalog/repository"
)

// RepositorySet provides the catalog repositories
var RepositorySet = wire.NewSet(
	repository.NewGormInkModelRepository,
	wire.Bind(new(domain.InkModelRepository), new(*repository.GormInkModelRepository)),
	repository.NewGormPrinterModelRepository,
	wire.Bind(new(domain.PrinterModelRepository), new(*repository.GormPrinterModelRepository)),
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
