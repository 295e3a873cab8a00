package supabase

import (
	"errors"
	"fmt"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// Client validates bearer tokens against Supabase Auth.
type Client struct {
	client *supabase.Client
	url    string
	key    string
	logger domain.Logger
}

// NewClient creates a Supabase auth client; call Initialize before use.
func NewClient(url, key string, logger domain.Logger) *Client {
	return &Client{
		url:    url,
		key:    key,
		logger: logger,
	}
}

// Initialize establishes a connection to Supabase
func (s *Client) Initialize() error {
	if s.url == "" || s.key == "" {
		return errors.New("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(s.url, s.key, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized", "url", s.url)
	return nil
}

// ValidateToken resolves the user behind a Supabase JWT.
func (s *Client) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if s.client == nil {
		return nil, errors.New("supabase client not initialized")
	}

	// Headers set on the base client do not reach GoTrue; the token has to
	// go through WithToken.
	user, err := s.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrInvalidToken)
	}

	return &domain.SupabaseUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}, nil
}

var _ domain.SupabaseClient = (*Client)(nil)
