package modules

import (
	"github.com/mediscribe/mediscribe-api/internal/container"
	repo "github.com/mediscribe/mediscribe-api/internal/domain/repository"
	pginfra "github.com/mediscribe/mediscribe-api/internal/infrastructure/postgres"
)

// userRepo builds the directory used by the request gate and auth handlers.
func userRepo() repo.UserRepository {
	return pginfra.NewUserRepository(container.GetPGPool())
}
