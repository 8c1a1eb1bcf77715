//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/printops/inkwell/internal/catalog/domain"
	catalogrepo "github.com/printops/inkwell/internal/catalog/repository"
	"github.com/printops/inkwell/internal/inventory/delivery/http"
	"github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/inventory/repository"
)

// RepositorySet provides the inventory repositories plus the ink model
// repository needed for color validation
var RepositorySet = wire.NewSet(
	repository.NewGormLotRepository,
	wire.Bind(new(domain.LotRepository), new(*repository.GormLotRepository)),
	repository.NewGormLedgerRepository,
	wire.Bind(new(domain.LedgerRepository), new(*repository.GormLedgerRepository)),
	catalogrepo.NewGormInkModelRepository,
	wire.Bind(new(catalogdomain.InkModelRepository), new(*catalogrepo.GormInkModelRepository)),
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
