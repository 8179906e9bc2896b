package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/services"
	pkgauth "github.com/soundreach/backoffice/pkg/auth"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

// UserService defines the interface for user management logic
type UserService interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, showDeleted bool, limit, offset int) ([]*models.User, error)
	CreateUser(ctx context.Context, actorID string, user *models.User, password string) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, id string, input services.UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	RestoreUser(ctx context.Context, actorID, id string) (*models.User, error)
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Request/Response DTOs

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,min=1,max=100,noxss"`
	Password string `json:"password" validate:"required,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=STAFF ADMIN SUPERADMIN"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Name     string `json:"name" validate:"omitempty,min=1,max=100,noxss"`
	Role     string `json:"role" validate:"omitempty,oneof=STAFF ADMIN SUPERADMIN"`
	Password string `json:"password" validate:"omitempty,max=128"`
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Deleted   bool   `json:"deleted"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListUsersResponse struct {
	Users []*UserResponse `json:"users"`
	Total int             `json:"total"`
}

// userModelToResponse converts a user model to a response DTO
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Deleted:   user.IsDeleted(),
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !sanitize.ValidID(userID) {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// ListUsers retrieves users with pagination. Soft-deleted accounts are
// excluded unless show_deleted=true.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if err := parseIntParam(l, &limit, 1, 200); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
	}

	if o := r.URL.Query().Get("offset"); o != "" {
		if err := parseIntParam(o, &offset, 0, 100000); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid offset parameter")
			return
		}
	}

	showDeleted := r.URL.Query().Get("show_deleted") == "true"

	users, err := h.service.ListUsers(r.Context(), showDeleted, limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	response := &ListUsersResponse{
		Users: make([]*UserResponse, len(users)),
		Total: len(users),
	}
	for i, user := range users {
		response.Users[i] = userModelToResponse(user)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}

// CreateUser creates a new user account
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := pkgauth.ValidatePassword(req.Password); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user := &models.User{
		Email: sanitize.Email(req.Email),
		Name:  sanitize.Name(req.Name),
		Role:  models.Role(req.Role),
	}
	if user.Role == "" {
		user.Role = models.RoleStaff
	}

	actor := auth.SessionFromContext(r)

	created, err := h.service.CreateUser(r.Context(), actor.UserID, user, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "A user with this email already exists")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, err.Error())
		default:
			pkghttp.WriteInternalError(w, "Something went wrong")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, userModelToResponse(created))
}

// UpdateUser updates an existing user. Omitted fields keep their values.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !sanitize.ValidID(userID) {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if req.Password != "" {
		if err := pkgauth.ValidatePassword(req.Password); err != nil {
			pkghttp.WriteBadRequest(w, err.Error())
			return
		}
	}

	input := services.UpdateUserInput{
		Role:     models.Role(req.Role),
		Password: req.Password,
	}
	if req.Email != "" {
		input.Email = sanitize.Email(req.Email)
	}
	if req.Name != "" {
		input.Name = sanitize.Name(req.Name)
	}

	actor := auth.SessionFromContext(r)

	updated, err := h.service.UpdateUser(r.Context(), actor.UserID, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "A user with this email already exists")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, err.Error())
		default:
			pkghttp.WriteInternalError(w, "Something went wrong")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(updated))
}

// DeleteUser soft-deletes a user. Accounts cannot delete themselves.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !sanitize.ValidID(userID) {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	actor := auth.SessionFromContext(r)
	if actor.UserID == userID {
		pkghttp.WriteBadRequest(w, "Cannot delete your own account")
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor.UserID, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// RestoreUser reverses a soft delete
func (h *UserHandler) RestoreUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if !sanitize.ValidID(userID) {
		pkghttp.WriteBadRequest(w, "Invalid user ID")
		return
	}

	actor := auth.SessionFromContext(r)

	restored, err := h.service.RestoreUser(r.Context(), actor.UserID, userID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "User is not deleted")
		default:
			pkghttp.WriteInternalError(w, "Something went wrong")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(restored))
}

// parseIntParam parses and range-checks an integer query parameter
func parseIntParam(value string, dest *int, min, max int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n < min || n > max {
		return errors.New("parameter out of range")
	}
	*dest = n
	return nil
}
