package user

import (
	"context"
	"errors"

	"instantcredit-backend/internal/domain/profile"
	"instantcredit-backend/internal/domain/uow"
	domain "instantcredit-backend/internal/domain/user"
	"instantcredit-backend/internal/usecase/auth"
	"instantcredit-backend/pkg/id"
)

type Usecase struct {
	users domain.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(users domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{users: users, uow: tx}
}

// Create registers a user. Customers get an empty profile provisioned in the
// same transaction so scoring always has a row to mirror into.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*UserDTO, error) {
	if in.Email == "" {
		return nil, errors.New("email is required")
	}
	if len(in.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	usr := &domain.User{
		UserID:       id.NewID32(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsActive:     true,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}
		if usr.Role != domain.RoleCustomer {
			return nil
		}
		return r.Profiles.Create(ctx, &profile.CustomerProfile{UserID: usr.UserID})
	})
	if err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) List(ctx context.Context) ([]UserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *toDTO(&users[i]))
	}
	return out, nil
}

// Update applies profile-ish fields. Passwords are never updated through
// this path.
func (u *Usecase) Update(ctx context.Context, userID string, in UpdateInput) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		usr.Email = *in.Email
	}
	if in.FirstName != nil {
		usr.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		usr.LastName = *in.LastName
	}
	if in.Phone != nil {
		usr.Phone = *in.Phone
	}
	if in.IsActive != nil {
		usr.IsActive = *in.IsActive
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

// Delete removes the user together with their profile and every application
// they own. The cascade runs in one transaction: a partial delete would leave
// orphaned scores behind.
func (u *Usecase) Delete(ctx context.Context, userID string) error {
	if _, err := u.users.GetByUserID(ctx, userID); err != nil {
		return err
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.DeleteByCustomerID(ctx, userID); err != nil {
			return err
		}
		if err := r.Profiles.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return r.Users.Delete(ctx, userID)
	})
}
