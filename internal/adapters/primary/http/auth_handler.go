package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	mw "github.com/lorrc/customer-service-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/customer-service-backend/internal/adapters/primary/validation"
	"github.com/lorrc/customer-service-backend/internal/auth"
	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// AuthHandler handles HTTP requests for registration, login and the
// authenticated profile.
type AuthHandler struct {
	authService  ports.AuthService
	tokenManager *auth.TokenManager
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService ports.AuthService,
	tokenManager *auth.TokenManager,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "auth"),
	}
}

// RegisterRoutes registers the auth endpoints.
// These routes are relative to /auth
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Profile lookup requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(mw.JWTMiddleware(h.tokenManager))
		r.Get("/me", h.HandleMe)
	})
}

// --- Request DTOs ---

// RegisterRequest defines the expected JSON body for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name).
		MaxLength("name", r.Name, domain.MaxNameLength)

	v.Required("email", r.Email).
		Email("email", r.Email).
		MaxLength("email", r.Email, domain.MaxEmailLength)

	v.Required("password", r.Password).
		MinLength("password", r.Password, domain.MinPasswordLength).
		MaxLength("password", r.Password, domain.MaxPasswordLength)

	v.OneOf("role", r.Role, []string{
		string(domain.RoleCustomer),
		string(domain.RoleAgent),
		string(domain.RoleAdmin),
	})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// LoginRequest defines the expected JSON body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("email", r.Email)
	v.Required("password", r.Password)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// --- Response DTOs ---

// UserDTO defines the JSON response for users. The password hash
// never leaves the server.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse pairs the authenticated user with a bearer token.
type LoginResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// --- Handlers ---

// HandleRegister handles requests to create a new account.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	}

	user, err := h.authService.Register(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
	)

	WriteCreated(w, toUserDTO(user))
}

// HandleLogin handles requests to exchange credentials for a token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[LoginRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)

	WriteJSON(w, http.StatusOK, LoginResponse{
		User:  toUserDTO(user),
		Token: token,
	})
}

// HandleMe handles requests for the authenticated user's profile.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserDTO(user))
}

// --- Helper methods ---

// getClaims extracts and validates user claims from the request context
func (h *AuthHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}
