package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAppErrors(t *testing.T) {
	t.Run(`KindOf through wrap`, func(t *testing.T) {
		err := errors.Wrap(Conflict("respondent %s already submitted", "R1"), "ошибка сохранения")
		require.Equal(t, KindConflict, KindOf(err))
		require.True(t, Is(err, KindConflict))
		require.True(t, IsApp(err))
		require.Equal(t, "ошибка сохранения: respondent R1 already submitted", err.Error())
	})

	t.Run(`plain error is internal`, func(t *testing.T) {
		err := errors.New("boom")
		require.Equal(t, KindInternal, KindOf(err))
		require.False(t, IsApp(err))
		require.False(t, Is(nil, KindInternal))
	})
}
