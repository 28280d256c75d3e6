package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/hash"
)

func adminPrincipal(id string) *Principal {
	return &Principal{UserID: id, Role: domain.RoleAdmin}
}

func TestUserUC_UpdateProfile_NameAndEmail(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(user), nopLogger{})

	info, err := uc.UpdateProfile(context.Background(), &Principal{UserID: user.ID}, &UpdateProfileReq{
		Name:  "  Ann Updated  ",
		Email: "ann2@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ann Updated", info.Name)
	assert.Equal(t, "ann2@example.com", info.Email)
}

func TestUserUC_UpdateProfile_PasswordRequiresCurrent(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(user), nopLogger{})

	_, err := uc.UpdateProfile(context.Background(), &Principal{UserID: user.ID}, &UpdateProfileReq{
		Password: "newsecret",
	})

	var vErr *e.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "currentPassword", vErr.Field)
}

func TestUserUC_UpdateProfile_WrongCurrentPassword(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(user), nopLogger{})

	_, err := uc.UpdateProfile(context.Background(), &Principal{UserID: user.ID}, &UpdateProfileReq{
		Password:        "newsecret",
		CurrentPassword: "wrong-pass",
	})

	assert.ErrorIs(t, err, e.ErrInvalidCredentials)
}

func TestUserUC_UpdateProfile_PasswordChange(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	repo := newFakeUserRepo(user)
	uc := NewUserUC(repo, nopLogger{})

	_, err := uc.UpdateProfile(context.Background(), &Principal{UserID: user.ID}, &UpdateProfileReq{
		Password:        "newsecret",
		CurrentPassword: "secret123",
	})

	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, hash.Compare("newsecret", stored.PasswordHash))
}

func TestUserUC_UpdateProfile_EmailCollision(t *testing.T) {
	ann := registeredUser(t, "ann@example.com", "secret123")
	bob := registeredUser(t, "bob@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(ann, bob), nopLogger{})

	_, err := uc.UpdateProfile(context.Background(), &Principal{UserID: ann.ID}, &UpdateProfileReq{
		Email: "bob@example.com",
	})

	assert.ErrorIs(t, err, e.ErrEmailTaken)
}

func TestUserUC_DeleteProfile(t *testing.T) {
	user := registeredUser(t, "ann@example.com", "secret123")
	repo := newFakeUserRepo(user)
	uc := NewUserUC(repo, nopLogger{})

	require.NoError(t, uc.DeleteProfile(context.Background(), &Principal{UserID: user.ID}))

	_, err := repo.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, e.ErrUserNotFound)
}

func TestUserUC_ListUsers_Search(t *testing.T) {
	ann := registeredUser(t, "ann@example.com", "secret123")
	bob := registeredUser(t, "bob@example.com", "secret123")
	bob.Name = "Bob"
	uc := NewUserUC(newFakeUserRepo(ann, bob), nopLogger{})

	list, err := uc.ListUsers(context.Background(), UserQuery{Search: "bob"})

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "bob@example.com", list.Items[0].Email)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestUserUC_UpdateUser(t *testing.T) {
	admin := registeredUser(t, "admin@example.com", "secret123")
	admin.Role = domain.RoleAdmin
	target := registeredUser(t, "ann@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(admin, target), nopLogger{})

	role := domain.RoleAdmin
	active := false
	info, err := uc.UpdateUser(context.Background(), adminPrincipal(admin.ID), target.ID, &AdminUpdateUserReq{
		Role:   &role,
		Active: &active,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, info.Role)
	assert.False(t, info.Active)
}

func TestUserUC_UpdateUser_InvalidRole(t *testing.T) {
	admin := registeredUser(t, "admin@example.com", "secret123")
	target := registeredUser(t, "ann@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(admin, target), nopLogger{})

	role := "superuser"
	_, err := uc.UpdateUser(context.Background(), adminPrincipal(admin.ID), target.ID, &AdminUpdateUserReq{Role: &role})

	var vErr *e.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Field)
}

func TestUserUC_AdminCannotManageOwnAccount(t *testing.T) {
	admin := registeredUser(t, "admin@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(admin), nopLogger{})
	principal := adminPrincipal(admin.ID)

	name := "New Name"
	_, err := uc.UpdateUser(context.Background(), principal, admin.ID, &AdminUpdateUserReq{Name: &name})
	assert.ErrorIs(t, err, e.ErrSelfManagement)

	err = uc.DeleteUser(context.Background(), principal, admin.ID)
	assert.ErrorIs(t, err, e.ErrSelfManagement)

	err = uc.ChangeUserPassword(context.Background(), principal, admin.ID, "newsecret")
	assert.ErrorIs(t, err, e.ErrSelfManagement)
}

func TestUserUC_ChangeUserPassword(t *testing.T) {
	admin := registeredUser(t, "admin@example.com", "secret123")
	target := registeredUser(t, "ann@example.com", "secret123")
	repo := newFakeUserRepo(admin, target)
	uc := NewUserUC(repo, nopLogger{})

	require.NoError(t, uc.ChangeUserPassword(context.Background(), adminPrincipal(admin.ID), target.ID, "newsecret"))

	stored, err := repo.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, hash.Compare("newsecret", stored.PasswordHash))
}

func TestUserUC_DeleteUser_Unknown(t *testing.T) {
	admin := registeredUser(t, "admin@example.com", "secret123")
	uc := NewUserUC(newFakeUserRepo(admin), nopLogger{})

	err := uc.DeleteUser(context.Background(), adminPrincipal(admin.ID), "missing")

	assert.ErrorIs(t, err, e.ErrUserNotFound)
}
