package exportrows

import (
	"survey-package-backend/models"
	dbmodels "survey-package-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func testPackage() dbmodels.SurveyPackage {
	survey := &dbmodels.Survey{
		Title: "Настроение",
		Abbr:  "AB",
		Sectors: []dbmodels.SurveySector{
			{
				QuestionType: models.QuestionTypeSingleSelect,
				IsLinked:     true,
				ChoiceSet:    models.ChoiceSetShared,
				CommonChoices: []dbmodels.QuestionChoice{
					{Number: 1, Content: ptr("Да")},
					{Number: 2, Content: ptr("Нет"), IsDescriptive: true, DescForm: ptr("%d раз")},
				},
				Questions: []dbmodels.SectorQuestion{
					{BaseModel: dbmodels.BaseModel{ID: 11}, Number: "1.0", Content: "Первый"},
					{BaseModel: dbmodels.BaseModel{ID: 12}, Number: "1.2", Content: "Второй"},
				},
			},
			{
				QuestionType: models.QuestionTypeShortAnswer,
				ChoiceSet:    models.ChoiceSetPerQuestion,
				Questions: []dbmodels.SectorQuestion{
					{
						BaseModel: dbmodels.BaseModel{ID: 13},
						Number:    "3.10",
						Content:   "Третий",
						Choices:   []dbmodels.QuestionChoice{{Number: 1, Content: ptr("Свой"), IsDescriptive: true, DescForm: ptr(": %s")}},
					},
				},
			},
		},
	}
	return dbmodels.SurveyPackage{
		Title: "Пакет",
		Parts: []dbmodels.PackagePart{
			{
				Title: "Часть",
				Subjects: []dbmodels.PackageSubject{
					{
						Number: 2,
						Title:  "Тема",
						Surveys: []dbmodels.PackageSubjectSurvey{
							{Number: ptr(1), Survey: survey},
							{Title: ptr("Повтор"), Survey: survey},
							{Survey: nil},
						},
					},
				},
			},
		},
	}
}

func TestFormatQuestionNumber(t *testing.T) {
	cases := map[string]string{
		"1":     "1",
		"1.0":   "1",
		"1.2":   "1-2",
		"3.10":  "3",
		"10":    "10",
		"2.1.3": "2-1-3",
	}
	for number, expected := range cases {
		t.Run(number, func(t *testing.T) {
			require.Equal(t, expected, FormatQuestionNumber(number))
		})
	}
}

func TestEncodeChoices(t *testing.T) {
	choices := []dbmodels.QuestionChoice{
		{Number: 1, Content: ptr("Yes")},
		{Number: 2, Content: ptr("No"), IsDescriptive: true, DescForm: ptr("%d times")},
	}
	require.Equal(t, "1. Yes/2. No[숫자] times", EncodeChoices(choices))
	require.Equal(t, "1. [문자]", EncodeChoices([]dbmodels.QuestionChoice{{Number: 1, IsDescriptive: true, DescForm: ptr("%s")}}))
	require.Equal(t, "", EncodeChoices(nil))
	// подстановка касается только desc_form
	require.Equal(t, "1. 100%d/2. Иначе[문자]", EncodeChoices([]dbmodels.QuestionChoice{
		{Number: 1, Content: ptr("100%d")},
		{Number: 2, Content: ptr("Иначе"), IsDescriptive: true, DescForm: ptr("%s")},
	}))
}

func TestBuildResponseColumns(t *testing.T) {
	columns := BuildResponseColumns(testPackage())
	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, column.Header)
	}
	require.Equal(t, []string{
		"2-1-AB-1", "2-1-AB-1-2", "2-1-AB-3",
		"2-AB-1", "2-AB-1-2", "2-AB-3",
	}, headers)
	require.Equal(t, uint64(12), columns[1].QuestionID)
	require.Equal(t, models.QuestionTypeShortAnswer, columns[2].QuestionType)
}

func TestBuildStructureRows(t *testing.T) {
	rows := BuildStructureRows(testPackage())
	require.Len(t, rows, 6)

	first := rows[0].Values()
	require.Equal(t, []string{"Настроение", "Часть", "Тема", "단일 선택", "Y", "1. Да/2. Нет[숫자] раз", "1.0", "Первый", ""}, first)

	third := rows[2].Values()
	require.Equal(t, "단답형", third[3])
	require.Equal(t, "N", third[4])
	require.Empty(t, third[5])
	require.Equal(t, "1. Свой: [문자]", third[8])

	require.Equal(t, "Повтор", rows[3].Category)
}
