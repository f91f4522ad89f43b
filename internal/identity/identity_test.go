package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()

	t.Run("issue_and_resolve", func(t *testing.T) {
		token := store.Issue("user1")
		require.NotEmpty(t, token)

		userID, ok := store.Resolve(token)
		require.True(t, ok)
		require.Equal(t, "user1", userID)
	})

	t.Run("unknown_token", func(t *testing.T) {
		_, ok := store.Resolve("no-such-token")
		require.False(t, ok)
	})

	t.Run("empty_token", func(t *testing.T) {
		_, ok := store.Resolve("")
		require.False(t, ok)
	})

	t.Run("revoke", func(t *testing.T) {
		token := store.Issue("user2")
		store.Revoke(token)

		_, ok := store.Resolve(token)
		require.False(t, ok)

		// Revoking twice is harmless.
		store.Revoke(token)
	})

	t.Run("concurrent_issue_resolve", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token := store.Issue("user-concurrent")
				userID, ok := store.Resolve(token)
				require.True(t, ok)
				require.Equal(t, "user-concurrent", userID)
			}()
		}
		wg.Wait()
	})
}
