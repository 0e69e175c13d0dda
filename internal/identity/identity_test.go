package identity

import (
	"context"
	"razorpay-checkout-demo/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(ttl time.Duration) *TokenManager {
	return NewTokenManager(&config.Session{Secret: "test-secret", TTL: ttl})
}

func testProfile() *Identity {
	return &Identity{
		ID:          "user-a",
		DisplayName: "Customer Name",
		Email:       "customer@example.com",
		AvatarURL:   "https://example.com/avatar.png",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(time.Hour)

	token, err := tokens.Mint(testProfile())
	require.NoError(t, err)

	parsed, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", parsed.ID)
	assert.Equal(t, "Customer Name", parsed.DisplayName)
	assert.Equal(t, "customer@example.com", parsed.Email)
	assert.Equal(t, "https://example.com/avatar.png", parsed.AvatarURL)
}

func TestToken_Expired(t *testing.T) {
	tokens := newTestTokens(-time.Minute)

	token, err := tokens.Mint(testProfile())
	require.NoError(t, err)

	_, err = tokens.Parse(token)
	assert.Error(t, err)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := newTestTokens(time.Hour).Mint(testProfile())
	require.NoError(t, err)

	other := NewTokenManager(&config.Session{Secret: "other-secret", TTL: time.Hour})
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSignIn_MissingID(t *testing.T) {
	svc := NewIdentityService(newTestTokens(time.Hour))

	_, _, err := svc.SignIn(context.Background(), &Identity{DisplayName: "No ID"})

	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestSignIn_RegistersSession(t *testing.T) {
	svc := NewIdentityService(newTestTokens(time.Hour))

	user, token, err := svc.SignIn(context.Background(), testProfile())

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-a", user.ID)
	require.NotNil(t, svc.Current("user-a"))
}

func TestSignOut_ClearsSession(t *testing.T) {
	svc := NewIdentityService(newTestTokens(time.Hour))

	_, _, err := svc.SignIn(context.Background(), testProfile())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), "user-a"))
	assert.Nil(t, svc.Current("user-a"))

	assert.ErrorIs(t, svc.SignOut(context.Background(), "user-a"), ErrNotSignedIn)
}

func TestSubscribe_Notifications(t *testing.T) {
	svc := NewIdentityService(newTestTokens(time.Hour))

	type event struct {
		userID string
		signed bool
	}
	var events []event
	unsubscribe := svc.Subscribe(func(userID string, id *Identity) {
		events = append(events, event{userID: userID, signed: id != nil})
	})

	_, _, err := svc.SignIn(context.Background(), testProfile())
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(context.Background(), "user-a"))

	require.Len(t, events, 2)
	assert.Equal(t, event{userID: "user-a", signed: true}, events[0])
	assert.Equal(t, event{userID: "user-a", signed: false}, events[1])

	unsubscribe()
	_, _, err = svc.SignIn(context.Background(), testProfile())
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
