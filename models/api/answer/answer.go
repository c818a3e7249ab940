package answerapimodels

import (
	"bytes"
	"encoding/json"
	"strings"
	apperrors "survey-package-backend/lib/utils/app-errors"
	shortid "survey-package-backend/lib/utils/short-id"
	dbmodels "survey-package-backend/models/db"
	"unicode/utf8"
)

type AnswerData struct {
	QuestionID uint64 `json:"question_id"`
	Answer     string `json:"answer"` // Несколько значений разделяются $
}

func (a AnswerData) Validate() error {
	if a.QuestionID == 0 {
		return apperrors.InvalidInput("не указан вопрос")
	}
	if utf8.RuneCountInString(a.Answer) > 1000 {
		return apperrors.InvalidInput("ответ на вопрос %d длиннее 1000 символов", a.QuestionID)
	}
	return nil
}

// AnswerList в запросе допускается только массив
type AnswerList []AnswerData

func (l *AnswerList) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '[' {
		return apperrors.InvalidInput("поле 'answers' должно быть списком")
	}
	var list []AnswerData
	if err := json.Unmarshal(raw, &list); err != nil {
		return apperrors.InvalidInput("некорректный список ответов")
	}
	*l = list
	return nil
}

type SubmitData struct {
	Key     string     `json:"key"` // Идентификатор рабочего пространства + идентификатор респондента
	Answers AnswerList `json:"answers"`
}

func (s SubmitData) Validate() error {
	workspaceUUID, respondentID, ok := shortid.SplitKey(strings.TrimSpace(s.Key))
	if !ok || workspaceUUID == "" {
		return apperrors.InvalidInput("некорректный ключ респондента")
	}
	if utf8.RuneCountInString(respondentID) > 30 {
		return apperrors.InvalidInput("идентификатор респондента длиннее 30 символов")
	}
	if len(s.Answers) == 0 {
		return apperrors.InvalidInput("поле 'answers' обязательно")
	}
	seen := make(map[uint64]bool, len(s.Answers))
	for _, answer := range s.Answers {
		if err := answer.Validate(); err != nil {
			return err
		}
		if seen[answer.QuestionID] {
			return apperrors.InvalidInput("ответ на вопрос %d указан повторно", answer.QuestionID)
		}
		seen[answer.QuestionID] = true
	}
	return nil
}

type AnswerView struct {
	ID           uint64 `json:"id"`
	QuestionID   uint64 `json:"question_id"`
	RespondentID string `json:"respondent_id"`
	Answer       string `json:"answer"`
}

type SubmitResult struct {
	Workspace    uint64       `json:"workspace"`
	RespondentID string       `json:"respondent_id"`
	Answers      []AnswerView `json:"answers"`
}

func AnswerConvert(rec dbmodels.QuestionAnswer) AnswerView {
	return AnswerView{
		ID:           rec.ID,
		QuestionID:   rec.QuestionID,
		RespondentID: rec.RespondentID,
		Answer:       rec.Answer,
	}
}
