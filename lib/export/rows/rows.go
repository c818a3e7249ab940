package exportrows

import (
	"fmt"
	"strconv"
	"strings"
	"survey-package-backend/models"
	dbmodels "survey-package-backend/models/db"
)

var StructureHeaders = []string{"구분", "파트", "주제", "문항 유형", "연결 여부", "공통 선택지", "문항 번호", "문항 내용", "문항 선택지"}

// ResponseColumn одна колонка выгрузки ответов на один вопрос
type ResponseColumn struct {
	Header       string
	QuestionID   uint64
	QuestionType models.QuestionType
}

// StructureRow строка выгрузки структуры, заполняется по мере спуска по дереву пакета
type StructureRow struct {
	Category        string
	PartTitle       string
	SubjectTitle    string
	QuestionType    models.QuestionType
	IsLinked        bool
	CommonChoices   string
	QuestionNumber  string
	QuestionContent string
	QuestionChoices string
}

func (r StructureRow) Values() []string {
	linked := "N"
	if r.IsLinked {
		linked = "Y"
	}
	return []string{
		r.Category,
		r.PartTitle,
		r.SubjectTitle,
		r.QuestionType.ToHuman(),
		linked,
		r.CommonChoices,
		r.QuestionNumber,
		r.QuestionContent,
		r.QuestionChoices,
	}
}

// BuildResponseColumns колонки в порядке часть, тема, опрос темы, сектор, вопрос
func BuildResponseColumns(pkg dbmodels.SurveyPackage) []ResponseColumn {
	result := []ResponseColumn{}
	for _, part := range pkg.Parts {
		for _, subject := range part.Subjects {
			for _, subjectSurvey := range subject.Surveys {
				if subjectSurvey.Survey == nil {
					continue
				}
				prefix := HeaderPrefix(subject, subjectSurvey, subjectSurvey.Survey.Abbr)
				for _, sector := range subjectSurvey.Survey.Sectors {
					for _, question := range sector.Questions {
						result = append(result, ResponseColumn{
							Header:       prefix + "-" + FormatQuestionNumber(question.Number),
							QuestionID:   question.ID,
							QuestionType: sector.QuestionType,
						})
					}
				}
			}
		}
	}
	return result
}

func BuildStructureRows(pkg dbmodels.SurveyPackage) []StructureRow {
	result := []StructureRow{}
	for _, part := range pkg.Parts {
		partRow := StructureRow{PartTitle: part.Title}
		for _, subject := range part.Subjects {
			subjectRow := partRow
			subjectRow.SubjectTitle = subject.Title
			for _, subjectSurvey := range subject.Surveys {
				if subjectSurvey.Survey == nil {
					continue
				}
				surveyRow := subjectRow
				surveyRow.Category = subjectSurvey.GetTitle()
				for _, sector := range subjectSurvey.Survey.Sectors {
					sectorRow := surveyRow
					sectorRow.QuestionType = sector.QuestionType
					sectorRow.IsLinked = sector.IsLinked
					if sector.ChoiceSet == models.ChoiceSetShared {
						sectorRow.CommonChoices = EncodeChoices(sector.CommonChoices)
					}
					for _, question := range sector.Questions {
						row := sectorRow
						row.QuestionNumber = question.Number
						row.QuestionContent = question.Content
						row.QuestionChoices = EncodeChoices(question.Choices)
						result = append(result, row)
					}
				}
			}
		}
	}
	return result
}

// HeaderPrefix номер темы, номер опроса в теме (если задан) и сокращение опроса: "2-1-AB"
func HeaderPrefix(subject dbmodels.PackageSubject, subjectSurvey dbmodels.PackageSubjectSurvey, abbr string) string {
	prefix := strconv.Itoa(subject.Number)
	if subjectSurvey.Number != nil && *subjectSurvey.Number != 0 {
		prefix += "-" + strconv.Itoa(*subjectSurvey.Number)
	}
	return prefix + "-" + abbr
}

// FormatQuestionNumber "1.2" -> "1-2", номер с нулем на конце обрезается по точке: "1.0" -> "1", "3.10" -> "3"
func FormatQuestionNumber(number string) string {
	if strings.HasSuffix(number, "0") {
		if idx := strings.Index(number, "."); idx >= 0 {
			return number[:idx]
		}
		return number
	}
	return strings.ReplaceAll(number, ".", "-")
}

var descFormReplacer = strings.NewReplacer("%d", "[숫자]", "%s", "[문자]")

// EncodeChoices "1. Да/2. Нет[숫자] раз"
func EncodeChoices(list []dbmodels.QuestionChoice) string {
	items := make([]string, 0, len(list))
	for _, choice := range list {
		item := fmt.Sprintf("%d. %s", choice.Number, choice.GetContent())
		if choice.IsDescriptive {
			item += descFormReplacer.Replace(choice.GetDescForm())
		}
		items = append(items, item)
	}
	return strings.Join(items, "/")
}
