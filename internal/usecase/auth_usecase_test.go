package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/hash"
)

func registeredUser(t *testing.T, email, password string) *domain.User {
	t.Helper()

	passwordHash, err := hash.Password(password)
	require.NoError(t, err)

	return domain.NewUser(uuid.NewString(), "Ann", email, passwordHash)
}

func TestAuthUC_Register(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUC(repo, &fakeTokens{}, nopLogger{})

	res, err := uc.Register(context.Background(), &RegisterReq{
		Name:     "  Ann  ",
		Email:    "ann@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ann", res.User.Name)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.True(t, res.User.Active)
	assert.NotEmpty(t, res.Token)

	stored, err := repo.GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, hash.Compare("secret123", stored.PasswordHash))
}

func TestAuthUC_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   RegisterReq
		field string
	}{
		{"blank name", RegisterReq{Name: " ", Email: "a@b.com", Password: "secret123"}, "name"},
		{"bad email", RegisterReq{Name: "Ann", Email: "not-an-email", Password: "secret123"}, "email"},
		{"short password", RegisterReq{Name: "Ann", Email: "a@b.com", Password: "12345"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuthUC(newFakeUserRepo(), &fakeTokens{}, nopLogger{})

			_, err := uc.Register(context.Background(), &tt.req)

			var vErr *e.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestAuthUC_Register_TakenEmail(t *testing.T) {
	repo := newFakeUserRepo(registeredUser(t, "ann@example.com", "secret123"))
	uc := NewAuthUC(repo, &fakeTokens{}, nopLogger{})

	_, err := uc.Register(context.Background(), &RegisterReq{
		Name:     "Other Ann",
		Email:    "ann@example.com",
		Password: "different",
	})

	var vErr *e.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestAuthUC_Login(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	uc := NewAuthUC(newFakeUserRepo(user), &fakeTokens{}, nopLogger{})

	res, err := uc.Login(context.Background(), &LoginReq{Email: "ann@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)
	assert.Equal(t, "token-"+user.ID, res.Token)
}

func TestAuthUC_Login_UnknownEmail(t *testing.T) {
	uc := NewAuthUC(newFakeUserRepo(), &fakeTokens{}, nopLogger{})

	_, err := uc.Login(context.Background(), &LoginReq{Email: "nobody@example.com", Password: "secret123"})

	assert.ErrorIs(t, err, e.ErrUserNotFound)
}

func TestAuthUC_Login_WrongPassword(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	uc := NewAuthUC(newFakeUserRepo(user), &fakeTokens{}, nopLogger{})

	_, err := uc.Login(context.Background(), &LoginReq{Email: "ann@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, err, e.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, e.ErrUserNotFound)
}

func TestAuthUC_Me(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	uc := NewAuthUC(newFakeUserRepo(user), &fakeTokens{}, nopLogger{})

	info, err := uc.Me(context.Background(), &Principal{UserID: user.ID})

	require.NoError(t, err)
	assert.Equal(t, user.Email, info.Email)
}

func TestAuthUC_Me_DeletedAccount(t *testing.T) {
	uc := NewAuthUC(newFakeUserRepo(), &fakeTokens{}, nopLogger{})

	_, err := uc.Me(context.Background(), &Principal{UserID: "gone"})

	assert.ErrorIs(t, err, e.ErrUserNotFound)
}
