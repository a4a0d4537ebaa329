package uowmock

import (
	"context"

	"instantcredit-backend/internal/domain/uow"
)

// UoW is a function-backed mock that satisfies uow.UnitOfWork. When Repos is
// set and WithinTxFn is not, fn runs directly against Repos (no transaction).
type UoW struct {
	Repos      uow.Repos
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}
