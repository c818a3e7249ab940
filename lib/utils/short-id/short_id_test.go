package shortid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/stretchr/testify/require"
)

func TestShortID(t *testing.T) {
	t.Run(`length and alphabet check`, func(t *testing.T) {
		for i := 0; i < 100; i++ {
			id := New()
			require.Len(t, id, Length)
			for _, r := range id {
				require.True(t, strings.ContainsRune(shortuuid.DefaultAlphabet, r))
			}
		}
	})

	t.Run(`encode is deterministic`, func(t *testing.T) {
		id := uuid.MustParse("7baaac39-aa31-4712-893d-51ef80124a86")
		require.Equal(t, encode(id), encode(id))
		require.Len(t, encode(id), Length)
		require.Equal(t, strings.Repeat("2", Length), encode(uuid.Nil))
	})

	t.Run(`SplitKey check`, func(t *testing.T) {
		workspaceUUID := New()
		ws, respondent, ok := SplitKey(workspaceUUID + "R1")
		require.True(t, ok)
		require.Equal(t, workspaceUUID, ws)
		require.Equal(t, "R1", respondent)

		_, _, ok = SplitKey(workspaceUUID)
		require.False(t, ok)
	})
}
