package contextkeys

type contextKey string

const (
	UserIDKey    contextKey = "UserID"
	RoleIDKey    contextKey = "RoleID"
	RequestIDKey contextKey = "RequestID"
)
