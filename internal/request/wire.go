//go:build wireinject
// +build wireinject

package request

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
	inventoryrepo "github.com/printops/inkwell/internal/inventory/repository"
	"github.com/printops/inkwell/internal/request/delivery/http"
	"github.com/printops/inkwell/internal/request/domain"
	"github.com/printops/inkwell/internal/request/repository"
	"github.com/printops/inkwell/internal/request/usecase/command"
)

// RepositorySet provides the request repositories, the lot repository used
// for request validation, and the transaction manager
var RepositorySet = wire.NewSet(
	repository.NewGormRequestRepository,
	wire.Bind(new(domain.RequestRepository), new(*repository.GormRequestRepository)),
	repository.NewGormIssuanceRepository,
	wire.Bind(new(domain.IssuanceRepository), new(*repository.GormIssuanceRepository)),
	inventoryrepo.NewGormLotRepository,
	wire.Bind(new(inventorydomain.LotRepository), new(*inventoryrepo.GormLotRepository)),
	repository.NewGormTxManager,
	wire.Bind(new(domain.TxManager), new(*repository.GormTxManager)),
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies.
// The publisher may be nil when eventing is not configured.
func InitializeHTTPHandler(db *gorm.DB, publisher command.IssuancePublisher) (*http.RequestHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewRequestHandler,
	)
	return nil, nil
}
