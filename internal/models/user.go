package models

const RoleAdmin = "admin"

// AdminUser is the principal derived from a verified admin token.
type AdminUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
