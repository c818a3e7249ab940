package pdfexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateStructure(t *testing.T) {
	headers := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}

	t.Run(`core font`, func(t *testing.T) {
		rows := [][]string{
			{"Опрос", "Часть", "Тема", "리커트", "Y", "1. Yes/2. No", "1", "long question text that wraps inside the cell", ""},
		}
		for i := 0; i < 60; i++ {
			rows = append(rows, []string{"s", "p", "t", "x", "N", "", "2", "q", ""})
		}
		body, err := GenerateStructure("Package", headers, rows, "", "")
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	})

	t.Run(`column count mismatch`, func(t *testing.T) {
		_, err := GenerateStructure("Package", headers[:3], nil, "", "")
		require.Error(t, err)
	})

	t.Run(`missing font file`, func(t *testing.T) {
		_, err := GenerateStructure("Package", headers, nil, t.TempDir(), "absent.ttf")
		require.Error(t, err)
	})
}

func TestAsciiOnly(t *testing.T) {
	require.Equal(t, "a?b", asciiOnly("aЖb"))
}
