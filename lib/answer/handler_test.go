package answer

import (
	"survey-package-backend/db/testdb"
	apperrors "survey-package-backend/lib/utils/app-errors"
	shortid "survey-package-backend/lib/utils/short-id"
	"survey-package-backend/models"
	answerapimodels "survey-package-backend/models/api/answer"
	dbmodels "survey-package-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	workspace   dbmodels.Workspace
	pkg         dbmodels.SurveyPackage
	questionIDs []uint64
}

func newFixture(t *testing.T, gormDB *gorm.DB) fixture {
	survey := dbmodels.Survey{Title: "Опрос", Abbr: "AB"}
	require.NoError(t, gormDB.Create(&survey).Error)
	sector := dbmodels.SurveySector{
		SurveyID:     survey.ID,
		Title:        "S1",
		QuestionType: models.QuestionTypeLikert,
		ChoiceSet:    models.ChoiceSetShared,
	}
	require.NoError(t, gormDB.Create(&sector).Error)
	result := fixture{}
	for _, number := range []string{"1", "2"} {
		question := dbmodels.SectorQuestion{SectorID: sector.ID, Number: number, Content: "q" + number, IsRequired: true}
		require.NoError(t, gormDB.Create(&question).Error)
		result.questionIDs = append(result.questionIDs, question.ID)
	}

	result.pkg = dbmodels.SurveyPackage{Title: "Пакет", AccessCode: "1234", UUID: shortid.New()}
	require.NoError(t, gormDB.Create(&result.pkg).Error)
	result.workspace = dbmodels.Workspace{Name: "WS", UUID: shortid.New(), AccessCode: "0000"}
	require.NoError(t, gormDB.Create(&result.workspace).Error)
	composition := dbmodels.WorkspaceComposition{WorkspaceID: result.workspace.ID, SurveyPackageID: result.pkg.ID}
	require.NoError(t, gormDB.Omit("SurveyPackage").Create(&composition).Error)
	return result
}

func (f fixture) submitData(respondentID string) answerapimodels.SubmitData {
	return answerapimodels.SubmitData{
		Key: f.workspace.UUID + respondentID,
		Answers: answerapimodels.AnswerList{
			{QuestionID: f.questionIDs[0], Answer: "3"},
			{QuestionID: f.questionIDs[1], Answer: "1$2"},
		},
	}
}

func count(t *testing.T, gormDB *gorm.DB, model interface{}) int64 {
	var result int64
	require.NoError(t, gormDB.Model(model).Count(&result).Error)
	return result
}

func TestRecorder(t *testing.T) {
	gormDB := testdb.New(t)
	f := newFixture(t, gormDB)

	record := func() error {
		return gormDB.Transaction(func(tx *gorm.DB) error {
			recorder := NewRecorder(tx, f.workspace.ID, f.pkg.ID, 1, "R1")
			_, err := recorder.CreateAnswers(f.submitData("R1").Answers)
			if err != nil {
				return err
			}
			return recorder.RecordRespondent()
		})
	}

	t.Run(`duplicate submission`, func(t *testing.T) {
		require.NoError(t, record())
		err := record()
		require.Error(t, err)
		require.True(t, apperrors.Is(err, apperrors.KindConflict))

		require.EqualValues(t, 1, count(t, gormDB, &dbmodels.Respondent{}))
		// ответы второй попытки откатываются вместе с отметкой
		require.EqualValues(t, 2, count(t, gormDB, &dbmodels.QuestionAnswer{}))
	})

	t.Run(`unique index rejects respondent without pre-check`, func(t *testing.T) {
		rec := dbmodels.Respondent{RespondentID: "R1", SurveyPackageID: f.pkg.ID, WorkspaceID: f.workspace.ID}
		err := gormDB.Create(&rec).Error
		require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run(`unknown question`, func(t *testing.T) {
		err := gormDB.Transaction(func(tx *gorm.DB) error {
			recorder := NewRecorder(tx, f.workspace.ID, f.pkg.ID, 1, "R2")
			_, err := recorder.CreateAnswers(answerapimodels.AnswerList{{QuestionID: 12345, Answer: "1"}})
			return err
		})
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})
}

func TestRecorderRejectsRepeatedQuestion(t *testing.T) {
	gormDB := testdb.New(t)
	f := newFixture(t, gormDB)

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		recorder := NewRecorder(tx, f.workspace.ID, f.pkg.ID, 1, "R1")
		_, err := recorder.CreateAnswers(answerapimodels.AnswerList{
			{QuestionID: f.questionIDs[0], Answer: "1"},
			{QuestionID: f.questionIDs[0], Answer: "3"},
		})
		return err
	})
	require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	require.Zero(t, count(t, gormDB, &dbmodels.QuestionAnswer{}))
}

func TestSubmit(t *testing.T) {
	gormDB := testdb.New(t)
	f := newFixture(t, gormDB)
	handler := NewInstance(gormDB)

	t.Run(`ok`, func(t *testing.T) {
		result, err := handler.Submit(f.pkg.ID, 7, f.submitData("R1"))
		require.NoError(t, err)
		require.Equal(t, "R1", result.RespondentID)
		require.Equal(t, f.workspace.ID, result.Workspace)
		require.Len(t, result.Answers, 2)
		require.NotZero(t, result.Answers[0].ID)
	})

	t.Run(`second submission conflicts`, func(t *testing.T) {
		_, err := handler.Submit(f.pkg.ID, 7, f.submitData("R1"))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.EqualValues(t, 1, count(t, gormDB, &dbmodels.Respondent{}))
	})

	t.Run(`invalid key`, func(t *testing.T) {
		data := f.submitData("R3")
		data.Key = f.workspace.UUID
		_, err := handler.Submit(f.pkg.ID, 7, data)
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run(`unknown workspace`, func(t *testing.T) {
		data := f.submitData("R3")
		data.Key = shortid.New() + "R3"
		_, err := handler.Submit(f.pkg.ID, 7, data)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})

	t.Run(`package outside workspace`, func(t *testing.T) {
		other := dbmodels.SurveyPackage{Title: "Другой", AccessCode: "1", UUID: shortid.New()}
		require.NoError(t, gormDB.Create(&other).Error)
		_, err := handler.Submit(other.ID, 7, f.submitData("R3"))
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})

	t.Run(`closed package`, func(t *testing.T) {
		require.NoError(t, gormDB.Model(&dbmodels.SurveyPackage{}).Where("id = ?", f.pkg.ID).Update("is_closed", true).Error)
		_, err := handler.Submit(f.pkg.ID, 7, f.submitData("R4"))
		require.True(t, apperrors.Is(err, apperrors.KindUnprocessable))
	})
}
