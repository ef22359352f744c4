package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/service"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid user id")
		return
	}

	user, err := h.users.GetUser(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	user, err := h.users.GetUser(r.Context(), scope, scope.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	filter := repository.UserFilter{
		Role:   domain.Role(r.URL.Query().Get("role")),
		Search: r.URL.Query().Get("search"),
	}
	page, pageSize := pageParams(r)

	users, total, err := h.users.ListUsers(r.Context(), scope, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paginated{Items: users, Total: total, Page: page, PageSize: pageSize})
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid user id")
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), scope, id, service.UpdateProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid user id")
		return
	}

	var req setActiveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.users.SetActive(r.Context(), scope, id, req.IsActive); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_active": req.IsActive})
}
