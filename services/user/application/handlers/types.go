package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/services/user/domain/models"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,maxrunes=100" example:"Ada Lovelace"`
	Email    string `json:"email"    validate:"required,email"        example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"s3cret!"`
} // @name RegisterRequest

// Normalize trims the name and email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// FieldMessage supplies the user-facing message per field and rule.
func (r *RegisterRequest) FieldMessage(field, tag, _ string) string {
	switch {
	case field == "name" && tag == "required":
		return "Name is required"
	case field == "email" && tag == "required":
		return "Email is required"
	case field == "email":
		return "Please enter a valid email"
	case field == "password" && tag == "required":
		return "Password is required"
	case field == "password" && tag == "min":
		return "Password must be at least 6 characters"
	}
	return ""
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret!"`
} // @name LoginRequest

// Normalize trims the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    uuid.UUID `json:"_id"   example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Name  string    `json:"name"  example:"Ada Lovelace"`
	Email string    `json:"email" example:"ada@example.com"`
} // @name User

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool         `json:"success" example:"true"`
	Token   string       `json:"token"   example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    UserResponse `json:"user"`
} // @name AuthResponse

// UserEnvelope documents GET /auth/me responses.
type UserEnvelope struct {
	Success bool         `json:"success" example:"true"`
	Data    UserResponse `json:"data"`
} // @name UserEnvelope

// signIn issues a bearer token for u, binds u to the cookie session when the
// gate has a store, and writes the auth response with status.
func signIn(w http.ResponseWriter, r *http.Request, gate *auth.Gate, u *models.User, status int) error {
	token, _, err := gate.Tokens().Issue(u.ID, u.Name)
	if err != nil {
		return err
	}
	if store := gate.Store(); store != nil {
		if err := auth.StartSession(store, w, r, u.ID); err != nil {
			return err
		}
	}
	httpx.JSON(w, status, AuthResponse{Success: true, Token: token, User: newUserResponse(u)})
	return nil
}
