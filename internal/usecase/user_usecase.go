package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/hash"
	"github.com/sweetslice/go-backend/pkg/logger"
)

// UserUseCase implements profile self-service and admin user management.
// Admin endpoints refuse to touch the admin's own account.
type UserUseCase struct {
	userRepo UserRepository
	logger   logger.Logger
}

func NewUserUC(userRepo UserRepository, logger logger.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the caller's own account.
func (u *UserUseCase) GetProfile(ctx context.Context, principal *Principal) (*UserInfo, error) {
	const op = "UserUseCase.GetProfile"

	user, err := u.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewUserInfo(user)
	return &info, nil
}

// UpdateProfile updates the caller's own name, email, or password.
// A password change requires the current password; a changed email must not
// collide with another account.
func (u *UserUseCase) UpdateProfile(ctx context.Context, principal *Principal, req *UpdateProfileReq) (*UserInfo, error) {
	const op = "UserUseCase.UpdateProfile"

	user, err := u.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Password != "" {
		if req.CurrentPassword == "" {
			return nil, e.Wrap(op, e.NewValidationError("currentPassword", "current password is required"))
		}
		if !hash.Compare(req.CurrentPassword, user.PasswordHash) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}

		passwordHash, err := hash.Password(req.Password)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		user.PasswordHash = passwordHash
	}

	if req.Email != "" && req.Email != user.Email {
		if err := u.ensureEmailFree(ctx, req.Email); err != nil {
			return nil, e.Wrap(op, err)
		}
		user.Email = req.Email
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewUserInfo(updated)
	return &info, nil
}

// DeleteProfile removes the caller's own account.
func (u *UserUseCase) DeleteProfile(ctx context.Context, principal *Principal) error {
	const op = "UserUseCase.DeleteProfile"

	if err := u.userRepo.Delete(ctx, principal.UserID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ListUsers returns one page of users, optionally filtered by a
// case-insensitive substring over name or email, newest first.
func (u *UserUseCase) ListUsers(ctx context.Context, q UserQuery) (*UserList, error) {
	const op = "UserUseCase.ListUsers"

	q, err := q.Normalize()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	users, total, err := u.userRepo.List(ctx, q)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]UserInfo, 0, len(users))
	for i := range users {
		items = append(items, NewUserInfo(&users[i]))
	}

	return &UserList{
		Items:      items,
		Pagination: NewPagination(total, q.Page, q.Limit),
	}, nil
}

// GetUser resolves any user by id (admin visibility).
func (u *UserUseCase) GetUser(ctx context.Context, id string) (*UserInfo, error) {
	const op = "UserUseCase.GetUser"

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewUserInfo(user)
	return &info, nil
}

// UpdateUser applies an admin's partial update to another user's account.
func (u *UserUseCase) UpdateUser(ctx context.Context, principal *Principal, id string, req *AdminUpdateUserReq) (*UserInfo, error) {
	const op = "UserUseCase.UpdateUser"

	if id == principal.UserID {
		return nil, e.Wrap(op, e.ErrSelfManagement)
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return nil, e.Wrap(op, e.NewValidationError("email", "valid email is required"))
		}
		if err := u.ensureEmailFree(ctx, *req.Email); err != nil {
			return nil, e.Wrap(op, err)
		}
		user.Email = *req.Email
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Role != nil {
		if *req.Role != domain.RoleUser && *req.Role != domain.RoleAdmin {
			return nil, e.Wrap(op, e.NewValidationError("role", "invalid role"))
		}
		user.Role = *req.Role
	}

	if req.Active != nil {
		user.Active = *req.Active
	}

	updated, err := u.userRepo.Update(ctx, user)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewUserInfo(updated)
	return &info, nil
}

// DeleteUser removes another user's account.
func (u *UserUseCase) DeleteUser(ctx context.Context, principal *Principal, id string) error {
	const op = "UserUseCase.DeleteUser"

	if id == principal.UserID {
		return e.Wrap(op, e.ErrSelfManagement)
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ChangeUserPassword sets a new password on another user's account.
func (u *UserUseCase) ChangeUserPassword(ctx context.Context, principal *Principal, id, newPassword string) error {
	const op = "UserUseCase.ChangeUserPassword"

	if id == principal.UserID {
		return e.Wrap(op, e.ErrSelfManagement)
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	passwordHash, err := hash.Password(newPassword)
	if err != nil {
		return e.Wrap(op, err)
	}
	user.PasswordHash = passwordHash

	if _, err := u.userRepo.Update(ctx, user); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (u *UserUseCase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return e.ErrEmailTaken
	}
	if !errors.Is(err, e.ErrUserNotFound) {
		return err
	}
	return nil
}
