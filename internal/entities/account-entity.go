package entities

// Account is a user of the dev backend stub.
type Account struct {
	ID           int64    `validate:"required,gt=0"`
	Username     string   `validate:"required,username"`
	PasswordHash string   `validate:"required"`
	Email        string   `validate:"omitempty,email"`
	Phone        string
	RoleID       int64    `validate:"required,gt=0"`
	RoleCode     string   `validate:"required"`
	RoleName     string   `validate:"required"`
	UserType     string   `validate:"required"`
	Permissions  []string `validate:"dive,permission_code"`
}
