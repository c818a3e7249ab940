package answer

import (
	answerstore "survey-package-backend/lib/answer/answer-store"
	sectorstore "survey-package-backend/lib/survey/sector-store"
	apperrors "survey-package-backend/lib/utils/app-errors"
	answerapimodels "survey-package-backend/models/api/answer"
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Recorder сохраняет ответы одного респондента; tx должна охватывать и ответы, и отметку респондента
type Recorder struct {
	answerStore  answerstore.Provider
	sectorStore  sectorstore.Provider
	workspaceID  uint64
	packageID    uint64
	userID       uint64
	respondentID string
}

func NewRecorder(tx *gorm.DB, workspaceID, packageID, userID uint64, respondentID string) *Recorder {
	return &Recorder{
		answerStore:  answerstore.NewInstance(tx),
		sectorStore:  sectorstore.NewInstance(tx),
		workspaceID:  workspaceID,
		packageID:    packageID,
		userID:       userID,
		respondentID: respondentID,
	}
}

func (r *Recorder) CreateAnswers(list answerapimodels.AnswerList) ([]dbmodels.QuestionAnswer, error) {
	questionIDs := make([]uint64, 0, len(list))
	for _, item := range list {
		questionIDs = append(questionIDs, item.QuestionID)
	}
	existing, err := r.sectorStore.GetExistingQuestionIDs(questionIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка проверки вопросов")
	}
	recList := make([]dbmodels.QuestionAnswer, 0, len(list))
	seen := make(map[uint64]bool, len(list))
	for _, item := range list {
		if !existing[item.QuestionID] {
			return nil, apperrors.NotFound("вопрос %d не найден", item.QuestionID)
		}
		if seen[item.QuestionID] {
			return nil, apperrors.InvalidInput("ответ на вопрос %d указан повторно", item.QuestionID)
		}
		seen[item.QuestionID] = true
		recList = append(recList, dbmodels.QuestionAnswer{
			QuestionID:      item.QuestionID,
			RespondentID:    r.respondentID,
			WorkspaceID:     r.workspaceID,
			SurveyPackageID: r.packageID,
			Answer:          item.Answer,
			UserID:          r.userID,
		})
	}
	err = r.answerStore.CreateAnswers(recList)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сохранения ответов")
	}
	return recList, nil
}

// RecordRespondent вызывается после CreateAnswers; повторная отправка отклоняется уникальным индексом
func (r *Recorder) RecordRespondent() error {
	exist, err := r.answerStore.RespondentExist(r.respondentID, r.packageID, r.workspaceID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки респондента")
	}
	if exist {
		return r.conflict()
	}
	rec := dbmodels.Respondent{
		RespondentID:    r.respondentID,
		SurveyPackageID: r.packageID,
		WorkspaceID:     r.workspaceID,
	}
	err = r.answerStore.CreateRespondent(&rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.conflict()
		}
		return errors.Wrap(err, "ошибка сохранения респондента")
	}
	return nil
}

func (r *Recorder) conflict() error {
	return apperrors.Conflict("респондент %s уже отправил ответы по пакету %d", r.respondentID, r.packageID)
}
