package surveypackageapimodels

import (
	"bytes"
	"encoding/json"
	"strings"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/models"
	surveyapimodels "survey-package-backend/models/api/survey"
	dbmodels "survey-package-backend/models/db"
	"time"
	"unicode/utf8"
)

type ContactData struct {
	Type    models.ContactType `json:"type"`    // email или phone
	Content string             `json:"content"` // Адрес или номер
}

func (c ContactData) Validate() error {
	if !c.Type.IsValid() {
		return apperrors.InvalidInput("тип контакта должен быть 'email' или 'phone', получено '%s'", c.Type)
	}
	if strings.TrimSpace(c.Content) == "" {
		return apperrors.InvalidInput("не указано значение контакта")
	}
	if utf8.RuneCountInString(c.Content) > 50 {
		return apperrors.InvalidInput("значение контакта длиннее 50 символов")
	}
	return nil
}

// ContactList в запросе допускается только массив
type ContactList []ContactData

func (l *ContactList) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*l = nil
		return nil
	}
	if len(raw) == 0 || raw[0] != '[' {
		return apperrors.InvalidInput("поле 'contacts' должно быть списком")
	}
	var list []ContactData
	if err := json.Unmarshal(raw, &list); err != nil {
		return apperrors.InvalidInput("некорректный список контактов")
	}
	*l = list
	return nil
}

func (l ContactList) Validate() error {
	for _, contact := range l {
		if err := contact.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type PackageData struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AccessCode  string       `json:"access_code"` // Код доступа для респондентов
	Manager     string       `json:"manager"`
	IsClosed    bool         `json:"is_closed"`
	Contacts    *ContactList `json:"contacts"` // При изменении пакета заменяет текущие контакты, если передан
}

func (p PackageData) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return apperrors.InvalidInput("не указано название пакета")
	}
	if utf8.RuneCountInString(p.Title) > 100 {
		return apperrors.InvalidInput("название пакета длиннее 100 символов")
	}
	if utf8.RuneCountInString(p.Description) > 200 {
		return apperrors.InvalidInput("описание пакета длиннее 200 символов")
	}
	if strings.TrimSpace(p.AccessCode) == "" {
		return apperrors.InvalidInput("не указан код доступа")
	}
	if utf8.RuneCountInString(p.AccessCode) > 10 {
		return apperrors.InvalidInput("код доступа длиннее 10 символов")
	}
	if utf8.RuneCountInString(p.Manager) > 10 {
		return apperrors.InvalidInput("имя менеджера длиннее 10 символов")
	}
	if p.Contacts != nil {
		return p.Contacts.Validate()
	}
	return nil
}

type SubjectSurveyData struct {
	Title  *string `json:"title"`  // Заголовок вместо названия опроса
	Number *int    `json:"number"` // Номер для заголовков выгрузки
	Survey uint64  `json:"survey"` // Идентификатор опроса
}

func (s SubjectSurveyData) Validate() error {
	if s.Survey == 0 {
		return apperrors.InvalidInput("не указан опрос")
	}
	if s.Title != nil && utf8.RuneCountInString(*s.Title) > 100 {
		return apperrors.InvalidInput("заголовок опроса длиннее 100 символов")
	}
	return nil
}

func (s SubjectSurveyData) ToDbModel(subjectID uint64) dbmodels.PackageSubjectSurvey {
	return dbmodels.PackageSubjectSurvey{
		SubjectID: subjectID,
		SurveyID:  s.Survey,
		Title:     s.Title,
		Number:    s.Number,
	}
}

type SubjectData struct {
	Number  int                 `json:"number"`
	Title   string              `json:"title"`
	Surveys []SubjectSurveyData `json:"surveys"`
}

func (s SubjectData) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return apperrors.InvalidInput("не указано название темы")
	}
	if utf8.RuneCountInString(s.Title) > 100 {
		return apperrors.InvalidInput("название темы длиннее 100 символов")
	}
	for _, survey := range s.Surveys {
		if err := survey.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type PartData struct {
	Title    *string       `json:"title"`
	Subjects []SubjectData `json:"subjects"`
}

func (p PartData) Validate() error {
	if p.Title == nil {
		return apperrors.InvalidInput("у части должно быть поле 'title'")
	}
	if utf8.RuneCountInString(*p.Title) > 100 {
		return apperrors.InvalidInput("название части длиннее 100 символов")
	}
	for _, subject := range p.Subjects {
		if err := subject.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func ValidateParts(parts []PartData) error {
	for _, part := range parts {
		if err := part.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type PartTitle struct {
	Title string `json:"title"`
}

func (p PartTitle) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return apperrors.InvalidInput("не указано название части")
	}
	if utf8.RuneCountInString(p.Title) > 100 {
		return apperrors.InvalidInput("название части длиннее 100 символов")
	}
	return nil
}

type SubjectUpdate struct {
	Number *int    `json:"number"`
	Title  *string `json:"title"`
}

func (s SubjectUpdate) Validate() error {
	if s.Title != nil {
		if strings.TrimSpace(*s.Title) == "" {
			return apperrors.InvalidInput("не указано название темы")
		}
		if utf8.RuneCountInString(*s.Title) > 100 {
			return apperrors.InvalidInput("название темы длиннее 100 символов")
		}
	}
	return nil
}

type ContactView struct {
	ID      uint64             `json:"id"`
	Type    models.ContactType `json:"type"`
	Content string             `json:"content"`
}

type SubjectSurveyView struct {
	ID       uint64                      `json:"id"`
	Title    *string                     `json:"title"`
	Number   *int                        `json:"number"`
	SurveyID uint64                      `json:"survey_id"`
	Survey   *surveyapimodels.SurveyView `json:"survey,omitempty"`
}

type SubjectView struct {
	ID      uint64              `json:"id"`
	Number  int                 `json:"number"`
	Title   string              `json:"title"`
	Surveys []SubjectSurveyView `json:"surveys"`
}

type PartView struct {
	ID       uint64        `json:"id"`
	Title    string        `json:"title"`
	Subjects []SubjectView `json:"subjects"`
}

type PackageView struct {
	ID          uint64        `json:"id"`
	AuthorID    uint64        `json:"author"`
	Title       string        `json:"title"`
	Logo        string        `json:"logo"`
	AccessCode  string        `json:"access_code"`
	UUID        string        `json:"uuid"`
	IsClosed    bool          `json:"is_closed"`
	Description string        `json:"description"`
	Manager     string        `json:"manager"`
	Contacts    []ContactView `json:"contacts"`
	Parts       []PartView    `json:"parts"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func PackageConvert(rec dbmodels.SurveyPackage) PackageView {
	result := PackageView{
		ID:          rec.ID,
		AuthorID:    rec.AuthorID,
		Title:       rec.Title,
		Logo:        rec.Logo,
		AccessCode:  rec.AccessCode,
		UUID:        rec.UUID,
		IsClosed:    rec.IsClosed,
		Description: rec.Description,
		Manager:     rec.Manager,
		Contacts:    make([]ContactView, 0, len(rec.Contacts)),
		Parts:       make([]PartView, 0, len(rec.Parts)),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	for _, contact := range rec.Contacts {
		result.Contacts = append(result.Contacts, ContactView{
			ID:      contact.ID,
			Type:    contact.Type,
			Content: contact.Content,
		})
	}
	for _, part := range rec.Parts {
		result.Parts = append(result.Parts, PartConvert(part))
	}
	return result
}

func PartConvert(rec dbmodels.PackagePart) PartView {
	result := PartView{
		ID:       rec.ID,
		Title:    rec.Title,
		Subjects: make([]SubjectView, 0, len(rec.Subjects)),
	}
	for _, subject := range rec.Subjects {
		result.Subjects = append(result.Subjects, SubjectConvert(subject))
	}
	return result
}

func SubjectConvert(rec dbmodels.PackageSubject) SubjectView {
	result := SubjectView{
		ID:      rec.ID,
		Number:  rec.Number,
		Title:   rec.Title,
		Surveys: make([]SubjectSurveyView, 0, len(rec.Surveys)),
	}
	for _, subjectSurvey := range rec.Surveys {
		view := SubjectSurveyView{
			ID:       subjectSurvey.ID,
			Title:    subjectSurvey.Title,
			Number:   subjectSurvey.Number,
			SurveyID: subjectSurvey.SurveyID,
		}
		if subjectSurvey.Survey != nil {
			survey := surveyapimodels.SurveyConvert(*subjectSurvey.Survey)
			view.Survey = &survey
		}
		result.Surveys = append(result.Surveys, view)
	}
	return result
}
