//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/printops/inkwell/internal/user/delivery/http"
	"github.com/printops/inkwell/internal/user/domain"
	"github.com/printops/inkwell/internal/user/repository"
	"github.com/printops/inkwell/pkg/auth"
)

// RepositorySet provides the user repository
var RepositorySet = wire.NewSet(
	repository.NewGormUserRepository,
	wire.Bind(new(domain.UserRepository), new(*repository.GormUserRepository)),
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, blacklist auth.TokenBlacklist) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewUserHandler,
	)
	return nil, nil
}
