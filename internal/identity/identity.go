package identity

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInvalidProfile = errors.New("sign-in profile is missing a user id")
	ErrNotSignedIn    = errors.New("user is not signed in")
)

// Identity is the authenticated user as asserted by the upstream identity
// provider. The checkout flow holds it read-only.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Listener receives identity-change notifications. A nil identity means the
// user signed out.
type Listener func(userID string, identity *Identity)

type Service interface {
	// SignIn registers the identity and returns it with a session token.
	SignIn(ctx context.Context, profile *Identity) (*Identity, string, error)
	SignOut(ctx context.Context, userID string) error
	Current(userID string) *Identity
	// Subscribe registers a listener for sign-in/sign-out events and returns
	// an unsubscribe handle.
	Subscribe(listener Listener) (unsubscribe func())
}

type identityServiceImpl struct {
	mu        sync.Mutex
	sessions  map[string]*Identity
	listeners map[int]Listener
	nextID    int
	tokens    *TokenManager
}

func NewIdentityService(tokens *TokenManager) Service {
	return &identityServiceImpl{
		sessions:  make(map[string]*Identity),
		listeners: make(map[int]Listener),
		tokens:    tokens,
	}
}

func (s *identityServiceImpl) SignIn(_ context.Context, profile *Identity) (*Identity, string, error) {
	if profile == nil || profile.ID == "" {
		return nil, "", ErrInvalidProfile
	}

	signedIn := *profile

	token, err := s.tokens.Mint(&signedIn)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	s.sessions[signedIn.ID] = &signedIn
	s.mu.Unlock()

	s.notify(signedIn.ID, &signedIn)

	return &signedIn, token, nil
}

func (s *identityServiceImpl) SignOut(_ context.Context, userID string) error {
	s.mu.Lock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if !ok {
		return ErrNotSignedIn
	}

	s.notify(userID, nil)
	return nil
}

func (s *identityServiceImpl) Current(userID string) *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

func (s *identityServiceImpl) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *identityServiceImpl) notify(userID string, identity *Identity) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(userID, identity)
	}
}
