package apiv1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentDisposition(t *testing.T) {
	t.Run(`ascii name`, func(t *testing.T) {
		require.Equal(t,
			`attachment; filename="Morning-202403050709.xlsx"; filename*=UTF-8''Morning-202403050709.xlsx`,
			contentDisposition("Morning-202403050709.xlsx"))
	})

	t.Run(`non-ascii name`, func(t *testing.T) {
		header := contentDisposition("설문_опрос-202403050709.xlsx")
		require.Equal(t,
			`attachment; filename="________-202403050709.xlsx"; filename*=UTF-8''%EC%84%A4%EB%AC%B8_%D0%BE%D0%BF%D1%80%D0%BE%D1%81-202403050709.xlsx`,
			header)
	})

	t.Run(`quotes are not passed through`, func(t *testing.T) {
		require.Contains(t, contentDisposition(`a"b.pdf`), `filename="a_b.pdf"`)
	})
}
