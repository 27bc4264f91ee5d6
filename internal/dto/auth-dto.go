package dto

// LoginDTO is the body of POST /auth/login.
type LoginDTO struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponseDTO is the data of a successful login. It is persisted verbatim under the "user" key.
type LoginResponseDTO struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	RoleName string `json:"roleName"`
	RoleID   int64  `json:"roleId"`
	UserType string `json:"userType"`
}

// UserPermissionsDTO is the data of GET /users/permissions.
type UserPermissionsDTO struct {
	UserID      int64    `json:"userId"`
	Username    string   `json:"username"`
	RoleCode    string   `json:"roleCode"`
	RoleName    string   `json:"roleName"`
	Permissions []string `json:"permissions"`
}
