package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/hash"
	"github.com/sweetslice/go-backend/pkg/logger"
)

// AuthUseCase implements registration, login, and principal resolution.
type AuthUseCase struct {
	userRepo UserRepository
	tokens   TokenService
	logger   logger.Logger
}

func NewAuthUC(userRepo UserRepository, tokens TokenService, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a user account and returns it with a fresh token.
// A taken email is a validation error, not a conflict leak to enumerate.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (*AuthRes, error) {
	const op = "AuthUseCase.Register"

	if err := validateRegister(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	_, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, e.Wrap(op, e.NewValidationError("email", "email already exists"))
	}
	if !errors.Is(err, e.ErrUserNotFound) {
		return nil, e.Wrap(op, err)
	}

	passwordHash, err := hash.Password(req.Password)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user := domain.NewUser(uuid.NewString(), strings.TrimSpace(req.Name), req.Email, passwordHash)
	created, err := a.userRepo.Create(ctx, user)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.authRes(created)
}

// Login authenticates by email and password. An unknown email reports
// NotFound, a wrong password reports invalid credentials; the two are
// deliberately distinct, mirroring the storefront's original behavior.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*AuthRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !hash.Compare(req.Password, user.PasswordHash) {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	return a.authRes(user)
}

// Me resolves the authenticated caller's account.
func (a *AuthUseCase) Me(ctx context.Context, principal *Principal) (*UserInfo, error) {
	const op = "AuthUseCase.Me"

	user, err := a.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewUserInfo(user)
	return &info, nil
}

func (a *AuthUseCase) authRes(user *domain.User) (*AuthRes, error) {
	token, _, err := a.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthRes{User: NewUserInfo(user), Token: token}, nil
}

func validateRegister(req *RegisterReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.NewValidationError("name", "name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return e.NewValidationError("email", "valid email is required")
	}
	if len(req.Password) < 6 {
		return e.NewValidationError("password", "password must be at least 6 characters long")
	}
	return nil
}
