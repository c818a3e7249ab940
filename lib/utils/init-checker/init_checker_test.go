package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckInit(t *testing.T) {
	t.Run(`all initialized`, func(t *testing.T) {
		require.NotPanics(t, func() {
			CheckInit("db", &gorm.DB{}, "name", "value")
		})
	})

	t.Run(`nil dependency`, func(t *testing.T) {
		require.PanicsWithValue(t, "зависимость db не инициализирована", func() {
			CheckInit("db", nil)
		})
	})

	t.Run(`typed nil dependency`, func(t *testing.T) {
		var db *gorm.DB
		require.PanicsWithValue(t, "зависимость db не инициализирована", func() {
			CheckInit("db", db)
		})
	})

	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("db")
		})
	})
}
