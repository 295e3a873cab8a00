package domain

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
	CreatedAt    string
	UpdatedAt    string
}

// SupabaseClient is the slice of Supabase used for bearer-token auth.
type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)
}

// AuthService validates bearer tokens for protected routes.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}
