package answerapimodels

import (
	"encoding/json"
	apperrors "survey-package-backend/lib/utils/app-errors"
	shortid "survey-package-backend/lib/utils/short-id"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitData(t *testing.T) {
	key := shortid.New() + "R1"

	t.Run(`ok`, func(t *testing.T) {
		var data SubmitData
		require.NoError(t, json.Unmarshal([]byte(`{"key":"`+key+`","answers":[{"question_id":1,"answer":"1$2"}]}`), &data))
		require.NoError(t, data.Validate())
	})

	t.Run(`answers not a list`, func(t *testing.T) {
		var data SubmitData
		err := json.Unmarshal([]byte(`{"key":"`+key+`","answers":{"question_id":1}}`), &data)
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run(`empty answers`, func(t *testing.T) {
		data := SubmitData{Key: key}
		require.True(t, apperrors.Is(data.Validate(), apperrors.KindInvalidInput))
	})

	t.Run(`same question twice`, func(t *testing.T) {
		data := SubmitData{Key: key, Answers: AnswerList{
			{QuestionID: 1, Answer: "1"},
			{QuestionID: 2, Answer: "2"},
			{QuestionID: 1, Answer: "3"},
		}}
		require.True(t, apperrors.Is(data.Validate(), apperrors.KindInvalidInput))
	})

	t.Run(`key without respondent`, func(t *testing.T) {
		data := SubmitData{Key: key[:shortid.Length], Answers: AnswerList{{QuestionID: 1}}}
		require.True(t, apperrors.Is(data.Validate(), apperrors.KindInvalidInput))
	})
}
