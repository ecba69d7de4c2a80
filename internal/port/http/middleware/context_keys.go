package middleware

// ContextKey is a private type for context keys to avoid collisions with other
// packages writing into the request context.
type ContextKey string

const (
	// AccountIDCtxKey holds the authenticated account id extracted from the JWT.
	AccountIDCtxKey = ContextKey("account_id")

	// AccountRoleCtxKey holds the authenticated account's role.
	AccountRoleCtxKey = ContextKey("account_role")
)
