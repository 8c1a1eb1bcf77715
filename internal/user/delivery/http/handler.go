package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/printops/inkwell/internal/middleware"
	"github.com/printops/inkwell/internal/user/domain"
	"github.com/printops/inkwell/internal/user/usecase/command"
	"github.com/printops/inkwell/internal/user/usecase/query"
	"github.com/printops/inkwell/pkg/auth"
	"github.com/printops/inkwell/pkg/logger"
)

// UserHandler handles HTTP requests for users and sessions
type UserHandler struct {
	registerHandler       *command.RegisterUserHandler
	loginHandler          *command.LoginUserHandler
	logoutHandler         *command.LogoutUserHandler
	changePasswordHandler *command.ChangePasswordHandler
	updateHandler         *command.UpdateUserHandler
	deleteHandler         *command.DeleteUserHandler
	changeRoleHandler     *command.ChangeRoleHandler
	toggleActiveHandler   *command.ToggleActiveHandler

	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository, blacklist auth.TokenBlacklist) *UserHandler {
	return &UserHandler{
		registerHandler:       command.NewRegisterUserHandler(repo),
		loginHandler:          command.NewLoginUserHandler(repo),
		logoutHandler:         command.NewLogoutUserHandler(blacklist),
		changePasswordHandler: command.NewChangePasswordHandler(repo),
		updateHandler:         command.NewUpdateUserHandler(repo),
		deleteHandler:         command.NewDeleteUserHandler(repo),
		changeRoleHandler:     command.NewChangeRoleHandler(repo),
		toggleActiveHandler:   command.NewToggleActiveHandler(repo),
		getUserHandler:        query.NewGetUserHandler(repo),
		listHandler:           query.NewListUsersHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username   string `json:"username"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		FullName   string `json:"full_name"`
		Department string `json:"department"`
		Role       string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Department: req.Department,
		Role:       req.Role,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Data: user})
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: response})
}

// Logout handles POST /api/auth/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	if err := h.logoutHandler.Handle(r.Context(), command.LogoutUserCommand{Token: token}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to log out")
		respondError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// ChangePassword handles PUT /api/auth/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		OldPassword     string `json:"old_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.changePasswordHandler.Handle(command.ChangePasswordCommand{
		UserID:          userID,
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Password changed"})
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: id})
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	role := r.URL.Query().Get("role")

	users, err := h.listHandler.Handle(query.ListUsersQuery{Role: role, Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: users})
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Email      string `json:"email"`
		FullName   string `json:"full_name"`
		Department string `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{
		ID:         id,
		Email:      req.Email,
		FullName:   req.FullName,
		Department: req.Department,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{ID: id}); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted"})
}

// ChangeRole handles PATCH /api/users/{id}/role
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.changeRoleHandler.Handle(command.ChangeRoleCommand{UserID: id, Role: req.Role})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ToggleActive handles PATCH /api/users/{id}/active
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.toggleActiveHandler.Handle(command.ToggleActiveCommand{UserID: id})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// RegisterRoutes registers all user and auth routes
func (h *UserHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", authn.Authenticate(h.Logout)).Methods("POST")
	router.HandleFunc("/api/auth/register", authn.RequireAdmin(h.Register)).Methods("POST")
	router.HandleFunc("/api/auth/change-password", authn.Authenticate(h.ChangePassword)).Methods("PUT")

	router.HandleFunc("/api/users", authn.RequireAdmin(h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/users/{id}", authn.Authenticate(h.GetUser)).Methods("GET")
	router.HandleFunc("/api/users/{id}", authn.RequireAdmin(h.UpdateUser)).Methods("PUT")
	router.HandleFunc("/api/users/{id}", authn.RequireAdmin(h.DeleteUser)).Methods("DELETE")
	router.HandleFunc("/api/users/{id}/role", authn.RequireAdmin(h.ChangeRole)).Methods("PATCH")
	router.HandleFunc("/api/users/{id}/active", authn.RequireAdmin(h.ToggleActive)).Methods("PATCH")
}

func pathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
