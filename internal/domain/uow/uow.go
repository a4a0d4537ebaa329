package uow

import (
	"context"

	"instantcredit-backend/internal/domain/application"
	"instantcredit-backend/internal/domain/profile"
	"instantcredit-backend/internal/domain/user"
)

type Repos struct {
	Applications application.Repository
	Users        user.Repository
	Profiles     profile.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn with all repositories bound to one transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
