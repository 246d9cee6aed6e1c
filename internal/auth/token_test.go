package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tk := NewTokens("s3cret", "market")
	p := Principal{UserID: uuid.NewString(), Role: RoleSeller}

	raw, err := tk.Issue(p, time.Hour)
	require.NoError(t, err)

	got, err := tk.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestTokensRejects(t *testing.T) {
	tk := NewTokens("s3cret", "market")
	p := Principal{UserID: uuid.NewString(), Role: RoleBuyer}

	t.Run("expired", func(t *testing.T) {
		raw, err := tk.Issue(p, -time.Minute)
		require.NoError(t, err)
		_, err = tk.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := NewTokens("other", "market").Issue(p, time.Hour)
		require.NoError(t, err)
		_, err = tk.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw, err := NewTokens("s3cret", "elsewhere").Issue(p, time.Hour)
		require.NoError(t, err)
		_, err = tk.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tk.Parse("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIssueValidates(t *testing.T) {
	tk := NewTokens("s3cret", "market")
	_, err := tk.Issue(Principal{UserID: "nope", Role: RoleBuyer}, time.Hour)
	require.Error(t, err)
	_, err = tk.Issue(Principal{UserID: uuid.NewString(), Role: "root"}, time.Hour)
	require.Error(t, err)
}

func TestPrincipalContext(t *testing.T) {
	_, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrNoPrincipal)

	p := Principal{UserID: uuid.NewString(), Role: RoleAdmin}
	got, err := FromContext(WithPrincipal(context.Background(), p))
	require.NoError(t, err)
	require.True(t, got.Is(RoleAdmin))
}
