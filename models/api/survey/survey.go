package surveyapimodels

import (
	"encoding/json"
	"strconv"
	"strings"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/models"
	dbmodels "survey-package-backend/models/db"
	"time"
	"unicode/utf8"
)

type SurveyData struct {
	Title       string `json:"title"`       // Название анкеты
	Description string `json:"description"` // Описание
	Abbr        string `json:"abbr"`        // Сокращение для заголовков выгрузки, до 5 символов
}

func (s SurveyData) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return apperrors.InvalidInput("не указано название анкеты")
	}
	if utf8.RuneCountInString(s.Title) > 50 {
		return apperrors.InvalidInput("название анкеты длиннее 50 символов")
	}
	if utf8.RuneCountInString(s.Description) > 200 {
		return apperrors.InvalidInput("описание анкеты длиннее 200 символов")
	}
	if strings.TrimSpace(s.Abbr) == "" {
		return apperrors.InvalidInput("не указано сокращение анкеты")
	}
	if utf8.RuneCountInString(s.Abbr) > 5 {
		return apperrors.InvalidInput("сокращение анкеты длиннее 5 символов")
	}
	return nil
}

// QuestionNumber номер вопроса в исходном виде, "1.0" и "3.10" не нормализуются
type QuestionNumber string

func (n *QuestionNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return apperrors.InvalidInput("некорректный номер вопроса")
		}
		raw = strings.TrimSpace(value)
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return apperrors.InvalidInput("некорректный номер вопроса: %s", raw)
	}
	*n = QuestionNumber(raw)
	return nil
}

func (n QuestionNumber) String() string {
	return string(n)
}

type ChoiceData struct {
	Number        int     `json:"number"`
	Content       *string `json:"content"`
	IsDescriptive bool    `json:"is_descriptive"` // Вариант со свободным ответом
	DescForm      *string `json:"desc_form"`      // Шаблон свободного ответа, %d - число, %s - текст
}

func (c ChoiceData) Validate() error {
	if c.IsDescriptive && (c.DescForm == nil || strings.TrimSpace(*c.DescForm) == "") {
		return apperrors.InvalidInput("вариант ответа %d: для варианта со свободным ответом требуется desc_form", c.Number)
	}
	if c.Content != nil && utf8.RuneCountInString(*c.Content) > 200 {
		return apperrors.InvalidInput("вариант ответа %d: текст длиннее 200 символов", c.Number)
	}
	if c.DescForm != nil && utf8.RuneCountInString(*c.DescForm) > 50 {
		return apperrors.InvalidInput("вариант ответа %d: desc_form длиннее 50 символов", c.Number)
	}
	return nil
}

func (c ChoiceData) ToDbModel(owner models.ChoiceOwner, ownerID uint64) dbmodels.QuestionChoice {
	return dbmodels.QuestionChoice{
		OwnerType:     owner,
		OwnerID:       ownerID,
		Number:        c.Number,
		Content:       c.Content,
		IsDescriptive: c.IsDescriptive,
		DescForm:      c.DescForm,
	}
}

type QuestionData struct {
	Number       QuestionNumber `json:"number"`
	Content      string         `json:"content"`
	IsRequired   *bool          `json:"is_required"`   // по умолчанию true
	LinkedSector *int           `json:"linked_sector"` // Порядковый номер (с 1) сектора в этом же запросе
	Choices      []ChoiceData   `json:"choices"`
}

func (q QuestionData) Required() bool {
	if q.IsRequired == nil {
		return true
	}
	return *q.IsRequired
}

func (q QuestionData) Validate(choiceSet models.ChoiceSet, sectorCount int) error {
	if q.Number == "" {
		return apperrors.InvalidInput("не указан номер вопроса")
	}
	if utf8.RuneCountInString(q.Number.String()) > 20 {
		return apperrors.InvalidInput("вопрос %s: номер длиннее 20 символов", q.Number)
	}
	if strings.TrimSpace(q.Content) == "" {
		return apperrors.InvalidInput("вопрос %s: не указан текст вопроса", q.Number)
	}
	if utf8.RuneCountInString(q.Content) > 200 {
		return apperrors.InvalidInput("вопрос %s: текст длиннее 200 символов", q.Number)
	}
	if choiceSet == models.ChoiceSetShared && len(q.Choices) != 0 {
		return apperrors.InvalidInput("вопрос %s: в секторе с общими вариантами ответа у вопроса не может быть своих вариантов", q.Number)
	}
	if q.LinkedSector != nil && (*q.LinkedSector < 1 || *q.LinkedSector > sectorCount) {
		return apperrors.InvalidInput("вопрос %s: linked_sector вне диапазона 1..%d", q.Number, sectorCount)
	}
	for _, choice := range q.Choices {
		if err := choice.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type SectorData struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	QuestionType  models.QuestionType `json:"question_type"`
	IsLinked      bool                `json:"is_linked"`
	CommonChoices []ChoiceData        `json:"common_choices"`
	Questions     []QuestionData      `json:"questions"`
}

func (s SectorData) ChoiceSet() models.ChoiceSet {
	if len(s.CommonChoices) != 0 {
		return models.ChoiceSetShared
	}
	return models.ChoiceSetPerQuestion
}

func (s SectorData) Validate(sectorCount int) error {
	if strings.TrimSpace(s.Title) == "" {
		return apperrors.InvalidInput("не указано название сектора")
	}
	if utf8.RuneCountInString(s.Title) > 50 {
		return apperrors.InvalidInput("название сектора длиннее 50 символов")
	}
	if utf8.RuneCountInString(s.Description) > 200 {
		return apperrors.InvalidInput("сектор '%s': описание длиннее 200 символов", s.Title)
	}
	if !s.QuestionType.IsValid() {
		return apperrors.InvalidInput("сектор '%s': неизвестный тип вопросов '%s'", s.Title, s.QuestionType)
	}
	if len(s.Questions) == 0 {
		return apperrors.InvalidInput("сектор '%s': поле 'questions' обязательно", s.Title)
	}
	for _, choice := range s.CommonChoices {
		if err := choice.Validate(); err != nil {
			return err
		}
	}
	choiceSet := s.ChoiceSet()
	for _, question := range s.Questions {
		if err := question.Validate(choiceSet, sectorCount); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSectors проверяет весь запрос до начала записи
func ValidateSectors(sectors []SectorData) error {
	for _, sector := range sectors {
		if err := sector.Validate(len(sectors)); err != nil {
			return err
		}
	}
	return nil
}

type ChoiceView struct {
	ID            uint64  `json:"id"`
	Number        int     `json:"number"`
	Content       *string `json:"content"`
	IsDescriptive bool    `json:"is_descriptive"`
	DescForm      *string `json:"desc_form"`
}

type QuestionView struct {
	ID           uint64       `json:"id"`
	Number       string       `json:"number"`
	Content      string       `json:"content"`
	IsRequired   bool         `json:"is_required"`
	LinkedSector *uint64      `json:"linked_sector"`
	Choices      []ChoiceView `json:"choices"`
}

type SectorView struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	QuestionType  models.QuestionType `json:"question_type"`
	IsLinked      bool                `json:"is_linked"`
	ChoiceSet     models.ChoiceSet    `json:"choice_set"`
	CommonChoices []ChoiceView        `json:"common_choices"`
	Questions     []QuestionView      `json:"questions"`
}

type SurveyView struct {
	ID          uint64       `json:"id"`
	AuthorID    uint64       `json:"author"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Abbr        string       `json:"abbr"`
	Sectors     []SectorView `json:"sectors"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func SurveyConvert(rec dbmodels.Survey) SurveyView {
	result := SurveyView{
		ID:          rec.ID,
		AuthorID:    rec.AuthorID,
		Title:       rec.Title,
		Description: rec.Description,
		Abbr:        rec.Abbr,
		Sectors:     make([]SectorView, 0, len(rec.Sectors)),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	for _, sector := range rec.Sectors {
		result.Sectors = append(result.Sectors, SectorConvert(sector))
	}
	return result
}

func SectorConvert(rec dbmodels.SurveySector) SectorView {
	result := SectorView{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		QuestionType:  rec.QuestionType,
		IsLinked:      rec.IsLinked,
		ChoiceSet:     rec.ChoiceSet,
		CommonChoices: choicesConvert(rec.CommonChoices),
		Questions:     make([]QuestionView, 0, len(rec.Questions)),
	}
	for _, question := range rec.Questions {
		result.Questions = append(result.Questions, QuestionView{
			ID:           question.ID,
			Number:       question.Number,
			Content:      question.Content,
			IsRequired:   question.IsRequired,
			LinkedSector: question.LinkedSectorID,
			Choices:      choicesConvert(question.Choices),
		})
	}
	return result
}

func choicesConvert(list []dbmodels.QuestionChoice) []ChoiceView {
	result := make([]ChoiceView, 0, len(list))
	for _, choice := range list {
		result = append(result, ChoiceView{
			ID:            choice.ID,
			Number:        choice.Number,
			Content:       choice.Content,
			IsDescriptive: choice.IsDescriptive,
			DescForm:      choice.DescForm,
		})
	}
	return result
}
