package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/logger"
)

type UserHandler struct {
	userUsecase usecase.UserUC
	logger      logger.Logger
}

func NewUserHandler(userUsecase usecase.UserUC, logger logger.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger}
}

type updateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
}

type adminUpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// getProfile
//
//	@Summary	Fetch your own profile
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	Response
//	@Security	BearerAuth
//	@Router		/users/profile [get]
func (u *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	info, err := u.userUsecase.GetProfile(r.Context(), PrincipalFromCtx(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(info))
}

// updateProfile
//
//	@Summary		Update your own profile
//	@Description	Changing the password requires the current one
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		updateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/profile [put]
func (u *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	info, err := u.userUsecase.UpdateProfile(r.Context(), PrincipalFromCtx(r.Context()), &usecase.UpdateProfileReq{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		u.logger.Warnf("update profile failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(info))
}

// deleteProfile
//
//	@Summary	Delete your own account
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	Response
//	@Security	BearerAuth
//	@Router		/users/profile [delete]
func (u *UserHandler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := u.userUsecase.DeleteProfile(r.Context(), PrincipalFromCtx(r.Context())); err != nil {
		u.logger.Warnf("delete profile failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// listUsers
//
//	@Summary	List accounts
//	@Tags		users
//	@Produce	json
//	@Param		search	query		string	false	"Substring over name and email"
//	@Param		page	query		int		false	"Page number"
//	@Param		limit	query		int		false	"Page size"
//	@Success	200		{object}	Response
//	@Security	BearerAuth
//	@Router		/users [get]
func (u *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := parseIntParam(r, "page")
	if err != nil {
		WriteError(w, err)
		return
	}
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		WriteError(w, err)
		return
	}

	list, err := u.userUsecase.ListUsers(r.Context(), usecase.UserQuery{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		u.logger.Warnf("list users failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccessPage(w, http.StatusOK, toUserDTOs(list.Items), list.Pagination)
}

// getUser
//
//	@Summary	Fetch any account by id
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	Response
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id} [get]
func (u *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	info, err := u.userUsecase.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(info))
}

// updateUser
//
//	@Summary		Update another account
//	@Description	Admins cannot change their own account here
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User id"
//	@Param			user	body		adminUpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	Response
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [put]
func (u *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	info, err := u.userUsecase.UpdateUser(r.Context(), PrincipalFromCtx(r.Context()), chi.URLParam(r, "id"), &usecase.AdminUpdateUserReq{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	})
	if err != nil {
		u.logger.Warnf("update user failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(info))
}

// deleteUser
//
//	@Summary	Delete another account
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	Response
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id} [delete]
func (u *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := u.userUsecase.DeleteUser(r.Context(), PrincipalFromCtx(r.Context()), chi.URLParam(r, "id")); err != nil {
		u.logger.Warnf("delete user failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// changeUserPassword
//
//	@Summary	Set a new password on another account
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string					true	"User id"
//	@Param		password	body		changePasswordRequest	true	"New password"
//	@Success	200			{object}	Response
//	@Failure	403			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id}/password [put]
func (u *UserHandler) changeUserPassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := u.userUsecase.ChangeUserPassword(r.Context(), PrincipalFromCtx(r.Context()), chi.URLParam(r, "id"), req.Password); err != nil {
		u.logger.Warnf("change password failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"updated": true})
}
