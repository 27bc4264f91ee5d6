package entities

import "cleaning-console/internal/dto"

// Session is the client-held view of the authenticated user.
// A non-nil Session always carries a non-empty Token.
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	RoleName string `json:"roleName"`
	RoleID   int64  `json:"roleId"`
	UserType string `json:"userType"`
	Token    string `json:"token"`
}

// NewSession builds the session view from a stored login response and the current token.
// It returns nil when the token is empty.
func NewSession(user dto.LoginResponseDTO, token string) *Session {
	if token == "" {
		return nil
	}
	return &Session{
		UserID:   user.ID,
		Username: user.Username,
		RoleName: user.RoleName,
		RoleID:   user.RoleID,
		UserType: user.UserType,
		Token:    token,
	}
}
