package xlsexport

import (
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/models"
	dbmodels "survey-package-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testPackage() dbmodels.SurveyPackage {
	content := "Да"
	survey := &dbmodels.Survey{
		Title: "Опрос",
		Abbr:  "AB",
		Sectors: []dbmodels.SurveySector{
			{
				QuestionType:  models.QuestionTypeLikert,
				ChoiceSet:     models.ChoiceSetShared,
				CommonChoices: []dbmodels.QuestionChoice{{Number: 1, Content: &content}},
				Questions: []dbmodels.SectorQuestion{
					{BaseModel: dbmodels.BaseModel{ID: 1}, Number: "1", Content: "Первый"},
				},
			},
			{
				QuestionType: models.QuestionTypeMultiSelect,
				ChoiceSet:    models.ChoiceSetPerQuestion,
				Questions: []dbmodels.SectorQuestion{
					{BaseModel: dbmodels.BaseModel{ID: 2}, Number: "2", Content: "Второй"},
				},
			},
		},
	}
	return dbmodels.SurveyPackage{
		Title: "Пакет",
		Parts: []dbmodels.PackagePart{{
			Title: "Часть",
			Subjects: []dbmodels.PackageSubject{{
				Number:  1,
				Title:   "Тема",
				Surveys: []dbmodels.PackageSubjectSurvey{{Survey: survey}},
			}},
		}},
	}
}

func TestExportResponses(t *testing.T) {
	handler := impl{}
	nthDay := 2
	data := ResponseExportData{
		WorkspaceName: "WS",
		PackageTitle:  "Пакет",
		NthDay:        &nthDay,
		Time:          "09:30",
		Respondents:   []string{"R1", "R2"},
		Package:       testPackage(),
		Answers: map[uint64][]dbmodels.QuestionAnswer{
			1: {{RespondentID: "R1", Answer: "5"}, {RespondentID: "R2", Answer: "3"}},
			2: {{RespondentID: "R1", Answer: "1$3"}, {RespondentID: "R2", Answer: "2"}},
		},
	}

	t.Run(`ok`, func(t *testing.T) {
		body, err := handler.ExportResponses(data)
		require.NoError(t, err)

		f, err := excelize.OpenReader(body)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("응답")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, []string{"워크스페이스", "설문 제목", "차시 (일)", "응답 지정 일시", "피험자ID", "1-AB-1", "1-AB-2"}, rows[0])
		require.Equal(t, []string{"WS", "Пакет", "2", "09:30", "R1", "5", "1, 3"}, rows[1])
		require.Equal(t, []string{"", "", "", "", "R2", "3", "2"}, rows[2])

		cellType, err := f.GetCellType("응답", "F2")
		require.NoError(t, err)
		require.NotEqual(t, excelize.CellTypeSharedString, cellType)
	})

	t.Run(`answers do not match respondents`, func(t *testing.T) {
		broken := data
		broken.Answers = map[uint64][]dbmodels.QuestionAnswer{
			1: {{RespondentID: "R1", Answer: "5"}},
			2: data.Answers[2],
		}
		body, err := handler.ExportResponses(broken)
		require.Nil(t, body)
		require.True(t, apperrors.Is(err, apperrors.KindInternal))
	})

	t.Run(`repeated answer hides a missing one`, func(t *testing.T) {
		broken := data
		broken.Respondents = []string{"R1", "R2", "R3"}
		broken.Answers = map[uint64][]dbmodels.QuestionAnswer{
			1: {{RespondentID: "R1", Answer: "5"}, {RespondentID: "R2", Answer: "1"}, {RespondentID: "R2", Answer: "3"}},
			2: {{RespondentID: "R1", Answer: "1"}, {RespondentID: "R2", Answer: "2"}, {RespondentID: "R3", Answer: "2"}},
		}
		body, err := handler.ExportResponses(broken)
		require.Nil(t, body)
		require.True(t, apperrors.Is(err, apperrors.KindInternal))
		require.True(t, apperrors.IsApp(err))
	})

	t.Run(`answer without respondent mark`, func(t *testing.T) {
		broken := data
		broken.Answers = map[uint64][]dbmodels.QuestionAnswer{
			1: {{RespondentID: "R1", Answer: "5"}, {RespondentID: "R9", Answer: "3"}},
			2: data.Answers[2],
		}
		_, err := handler.ExportResponses(broken)
		require.True(t, apperrors.Is(err, apperrors.KindInternal))
	})
}

func TestExportStructure(t *testing.T) {
	handler := impl{}

	body, err := handler.ExportStructure(testPackage())
	require.NoError(t, err)
	f, err := excelize.OpenReader(body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("구조")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "문항 선택지", rows[0][8])
	require.Equal(t, []string{"Опрос", "Часть", "Тема", "리커트", "N", "1. Да", "1", "Первый"}, rows[1])
	require.Equal(t, "다중 선택", rows[2][3])

	t.Run(`empty package`, func(t *testing.T) {
		body, err := handler.ExportStructure(dbmodels.SurveyPackage{Title: "Пусто"})
		require.NoError(t, err)
		f, err := excelize.OpenReader(body)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("구조")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}
