package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortQuestions(t *testing.T) {
	list := []SectorQuestion{
		{Number: "10"},
		{Number: "2"},
		{Number: "1.2"},
		{Number: "1"},
	}
	SortQuestions(list)
	numbers := []string{}
	for _, q := range list {
		numbers = append(numbers, q.Number)
	}
	require.Equal(t, []string{"1", "1.2", "2", "10"}, numbers)
}

func TestCompareQuestionNumbers(t *testing.T) {
	require.Equal(t, -1, CompareQuestionNumbers("2", "10"))
	require.Equal(t, 1, CompareQuestionNumbers("1.5", "1.2"))
	// равные числа сравниваются как строки
	require.Equal(t, -1, CompareQuestionNumbers("1.0", "1.00"))
	require.Equal(t, 0, CompareQuestionNumbers("3", "3"))
}
