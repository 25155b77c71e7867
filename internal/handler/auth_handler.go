package handlers

import (
	"net/http"

	"quillhub/internal/models"
	"quillhub/internal/requestctx"
)

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type MeResponse struct {
	User        *models.User               `json:"user"`
	Memberships []models.CompanyMembership `json:"memberships"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	res, err := h.AuthService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.Cookie.Write(w, res.Token)
	h.Log.Info(r.Context(), "user signed up", "user_id", res.User.UserID)

	writeSuccess(w, UserResponse{User: res.User}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.Cookie.Write(w, res.Token)

	writeSuccess(w, UserResponse{User: res.User}, http.StatusOK)
}

// Logout always clears the cookie, even for an already dead session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if id := requestctx.IdentityFromContext(r.Context()); id != nil {
		token = id.Token
	} else if value, ok := h.Cookie.Read(r); ok {
		token = value
	}

	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.Cookie.Clear(w)
	writeSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

// LogoutAll ends every session of the current user and clears this cookie.
func (h *Handlers) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.LogoutAll(r.Context(), user.UserID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.Cookie.Clear(w)
	writeSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	memberships := user.Memberships
	if memberships == nil {
		memberships = []models.CompanyMembership{}
	}

	writeSuccess(w, MeResponse{User: user, Memberships: memberships}, http.StatusOK)
}
