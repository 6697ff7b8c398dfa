package models

// Role names used by the remote API
const (
	RoleStudent = "ROLE_STUDENT"
	RoleTeacher = "ROLE_TEACHER"
	RoleAdmin   = "ROLE_ADMIN"
)

// User represents a user account as listed by the remote API
type User struct {
	ID        int64    `json:"id"`
	FullName  string   `json:"fullName"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Roles     []string `json:"roles"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FullName  string   `json:"fullName" validate:"required,notblank,max=255"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	Roles     []string `json:"roles" validate:"dive,oneof=ROLE_STUDENT ROLE_TEACHER ROLE_ADMIN"`
	Bio       string   `json:"bio,omitempty" validate:"max=2000"`
	AvatarURL string   `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// AssignRoleRequest represents an admin request to grant a role to a user
type AssignRoleRequest struct {
	RoleName string `json:"roleName" validate:"required,oneof=ROLE_STUDENT ROLE_TEACHER ROLE_ADMIN"`
}
