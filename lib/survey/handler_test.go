package survey

import (
	"survey-package-backend/db/testdb"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/models"
	surveyapimodels "survey-package-backend/models/api/survey"
	dbmodels "survey-package-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func testSectors() []surveyapimodels.SectorData {
	return []surveyapimodels.SectorData{
		{
			Title:        "Самочувствие",
			QuestionType: models.QuestionTypeLikert,
			CommonChoices: []surveyapimodels.ChoiceData{
				{Number: 1, Content: ptr("Yes")},
				{Number: 2, Content: ptr("No"), IsDescriptive: true, DescForm: ptr("%d times")},
			},
			Questions: []surveyapimodels.QuestionData{
				{Number: "2", Content: "Второй"},
				{Number: "1.2", Content: "Первый, подпункт", LinkedSector: ptr(2)},
			},
		},
		{
			Title:        "Комментарии",
			QuestionType: models.QuestionTypeSingleSelect,
			Questions: []surveyapimodels.QuestionData{
				{
					Number:     "1",
					Content:    "Выберите",
					IsRequired: ptr(false),
					Choices: []surveyapimodels.ChoiceData{
						{Number: 1, Content: ptr("A")},
						{Number: 2, Content: ptr("B")},
					},
				},
			},
		},
	}
}

func countRows(t *testing.T, handler impl, model interface{}) int64 {
	var count int64
	require.NoError(t, handler.db.Model(model).Count(&count).Error)
	return count
}

func TestComposeSectors(t *testing.T) {
	handler := NewInstance(testdb.New(t)).(impl)
	survey, err := handler.Create(1, surveyapimodels.SurveyData{Title: "Опрос", Abbr: "AB"})
	require.NoError(t, err)

	t.Run(`compose`, func(t *testing.T) {
		sectors, err := handler.ComposeSectors(survey.ID, testSectors())
		require.NoError(t, err)
		require.Len(t, sectors, 2)

		shared := sectors[0]
		require.Equal(t, models.ChoiceSetShared, shared.ChoiceSet)
		require.Len(t, shared.CommonChoices, 2)
		require.Len(t, shared.Questions, 2)
		// вопросы упорядочены по номеру
		require.Equal(t, "1.2", shared.Questions[0].Number)
		require.Equal(t, "2", shared.Questions[1].Number)
		require.True(t, shared.Questions[0].IsRequired)
		require.Empty(t, shared.Questions[0].Choices)
		require.NotNil(t, shared.Questions[0].LinkedSector)
		require.Equal(t, sectors[1].ID, *shared.Questions[0].LinkedSector)
		require.Nil(t, shared.Questions[1].LinkedSector)

		perQuestion := sectors[1]
		require.Equal(t, models.ChoiceSetPerQuestion, perQuestion.ChoiceSet)
		require.Empty(t, perQuestion.CommonChoices)
		require.Len(t, perQuestion.Questions, 1)
		require.False(t, perQuestion.Questions[0].IsRequired)
		require.Len(t, perQuestion.Questions[0].Choices, 2)
	})

	t.Run(`re-compose replaces everything`, func(t *testing.T) {
		_, err := handler.ComposeSectors(survey.ID, testSectors())
		require.NoError(t, err)
		sectors, err := handler.ComposeSectors(survey.ID, testSectors()[1:])
		require.NoError(t, err)
		require.Len(t, sectors, 1)

		require.EqualValues(t, 1, countRows(t, handler, &dbmodels.SurveySector{}))
		require.EqualValues(t, 1, countRows(t, handler, &dbmodels.SectorQuestion{}))
		require.EqualValues(t, 2, countRows(t, handler, &dbmodels.QuestionChoice{}))
	})

	t.Run(`invalid payload leaves sectors untouched`, func(t *testing.T) {
		invalid := testSectors()
		invalid[1].Questions = nil
		_, err := handler.ComposeSectors(survey.ID, invalid)
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))

		view, err := handler.Get(survey.ID)
		require.NoError(t, err)
		require.Len(t, view.Sectors, 1)
	})

	t.Run(`unknown survey`, func(t *testing.T) {
		_, err := handler.ComposeSectors(survey.ID+100, testSectors())
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})

	t.Run(`delete related sectors`, func(t *testing.T) {
		require.NoError(t, handler.DeleteRelatedSectors(survey.ID))
		require.EqualValues(t, 0, countRows(t, handler, &dbmodels.SurveySector{}))
		require.EqualValues(t, 0, countRows(t, handler, &dbmodels.SectorQuestion{}))
		require.EqualValues(t, 0, countRows(t, handler, &dbmodels.QuestionChoice{}))

		view, err := handler.Get(survey.ID)
		require.NoError(t, err)
		require.Empty(t, view.Sectors)
	})
}

func TestSurveyCrud(t *testing.T) {
	handler := NewInstance(testdb.New(t)).(impl)

	first, err := handler.Create(1, surveyapimodels.SurveyData{Title: "Первый", Abbr: "A"})
	require.NoError(t, err)
	_, err = handler.Create(2, surveyapimodels.SurveyData{Title: "Второй", Abbr: "B"})
	require.NoError(t, err)

	t.Run(`list by author`, func(t *testing.T) {
		list, err := handler.List(1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, first.ID, list[0].ID)

		list, err = handler.List(0)
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`update`, func(t *testing.T) {
		require.NoError(t, handler.Update(first.ID, surveyapimodels.SurveyData{Title: "Новый", Description: "desc", Abbr: "N"}))
		view, err := handler.Get(first.ID)
		require.NoError(t, err)
		require.Equal(t, "Новый", view.Title)
		require.Equal(t, "N", view.Abbr)

		err = handler.Update(first.ID+100, surveyapimodels.SurveyData{Title: "Новый", Abbr: "N"})
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})

	t.Run(`delete removes subject links`, func(t *testing.T) {
		_, err := handler.ComposeSectors(first.ID, testSectors())
		require.NoError(t, err)
		pkg := dbmodels.SurveyPackage{Title: "Пакет", UUID: "pkg-uuid", AccessCode: "1234", Manager: "m"}
		require.NoError(t, handler.db.Create(&pkg).Error)
		part := dbmodels.PackagePart{SurveyPackageID: pkg.ID, Title: "Part1"}
		require.NoError(t, handler.db.Create(&part).Error)
		subject := dbmodels.PackageSubject{PackagePartID: part.ID, Number: 1, Title: "Subj1"}
		require.NoError(t, handler.db.Create(&subject).Error)
		link := dbmodels.PackageSubjectSurvey{SubjectID: subject.ID, SurveyID: first.ID}
		require.NoError(t, handler.db.Omit("Survey").Create(&link).Error)

		require.NoError(t, handler.Delete(first.ID))
		_, err = handler.Get(first.ID)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
		require.EqualValues(t, 0, countRows(t, handler, &dbmodels.PackageSubjectSurvey{}))
		require.EqualValues(t, 0, countRows(t, handler, &dbmodels.SurveySector{}))
		require.EqualValues(t, 1, countRows(t, handler, &dbmodels.PackageSubject{}))

		err = handler.Delete(first.ID)
		require.True(t, apperrors.Is(err, apperrors.KindInstanceNotFound))
	})
}
