package dto

import (
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
)

// CreateUserRequest registers a new user. Username rules follow the signup
// form: at least 3 characters, a-z, 0-9 and underscore only.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,alphanum|containsany=_"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates by username or email plus password.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse returns the access token plus the user; the refresh token
// travels in an HTTP-only cookie.
type LoginResponse struct {
	AccessToken          string       `json:"accessToken"`
	AccessTokenExpiresAt time.Time    `json:"accessTokenExpiresAt"`
	User                 UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to its public DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
