package dto

import "time"

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the public identity of the logged-in user.
type LoginResponse struct {
	Message   string `json:"message"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// UserResponse is the public view of a user. The password hash has no field
// here, so it cannot be serialized by accident.
type UserResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	LastSeen *time.Time `json:"lastSeen"`
	Online   bool       `json:"online"`
}

// MessageResponse is the body of successful create endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
