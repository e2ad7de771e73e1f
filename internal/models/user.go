package models

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is a platform account. Only ADMIN accounts may use this client;
// the server enforces that, we just carry the role through.
type User struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role"`
	Verified    bool   `json:"verified"`
	Gender      string `json:"gender"`
	Birthday    string `json:"birthday"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// UserPayload updates an existing user; accounts are created through
// sign-up, never through this client.
type UserPayload struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role" validate:"required,oneof=ADMIN USER"`
	Verified    bool   `json:"verified"`
	Gender      string `json:"gender"`
	Birthday    string `json:"birthday"`
}

// LoginPayload mirrors the dashboard sign-in form.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
