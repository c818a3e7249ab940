package dbmodels

import (
	"sort"
	"strconv"
	"strings"
	"survey-package-backend/models"
)

type Survey struct {
	BaseModel
	Title       string         `gorm:"type:varchar(50);not null"`
	Description string         `gorm:"type:varchar(200);not null"`
	Abbr        string         `gorm:"type:varchar(5);not null"` // Сокращение, используется в заголовках выгрузки ответов
	AuthorID    uint64         `gorm:"index"`
	Sectors     []SurveySector `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

type SurveySector struct {
	BaseModel
	SurveyID      uint64              `gorm:"index;not null"`
	Title         string              `gorm:"type:varchar(50);not null"`
	Description   string              `gorm:"type:varchar(200);not null"`
	QuestionType  models.QuestionType `gorm:"type:varchar(20);not null"`
	IsLinked      bool
	ChoiceSet     models.ChoiceSet `gorm:"type:varchar(20);not null"` // Откуда вопросы сектора берут варианты ответа
	Questions     []SectorQuestion `gorm:"foreignKey:SectorID;constraint:OnDelete:CASCADE"`
	CommonChoices []QuestionChoice `gorm:"polymorphic:Owner;polymorphicValue:sector"`
}

type SectorQuestion struct {
	BaseModel
	SectorID       uint64           `gorm:"index;not null"`
	Number         string           `gorm:"type:varchar(20);not null"` // Номер вопроса, допускает подномер: "1.2"
	Content        string           `gorm:"type:varchar(200);not null"`
	IsRequired     bool             `gorm:"not null"`
	LinkedSectorID *uint64          `gorm:"index"` // Сектор, на который ветвится ответ
	Choices        []QuestionChoice `gorm:"polymorphic:Owner;polymorphicValue:question"`
}

// QuestionChoice принадлежит ровно одному владельцу: сектору (общие варианты) или вопросу
type QuestionChoice struct {
	BaseModel
	OwnerType     models.ChoiceOwner `gorm:"type:varchar(10);index:idx_choice_owner;not null"`
	OwnerID       uint64             `gorm:"index:idx_choice_owner;not null"`
	Number        int                `gorm:"not null"`
	Content       *string            `gorm:"type:varchar(200)"`
	IsDescriptive bool               `gorm:"not null"`
	DescForm      *string            `gorm:"type:varchar(50)"` // Шаблон свободного ответа с %d/%s
}

func (c QuestionChoice) GetContent() string {
	if c.Content == nil {
		return ""
	}
	return *c.Content
}

func (c QuestionChoice) GetDescForm() string {
	if c.DescForm == nil {
		return ""
	}
	return *c.DescForm
}

// SortQuestions упорядочивает вопросы по числовому значению номера, как в выгрузках
func SortQuestions(list []SectorQuestion) {
	sort.SliceStable(list, func(i, j int) bool {
		return CompareQuestionNumbers(list[i].Number, list[j].Number) < 0
	})
}

func CompareQuestionNumbers(a, b string) int {
	af, aErr := strconv.ParseFloat(a, 64)
	bf, bErr := strconv.ParseFloat(b, 64)
	if aErr == nil && bErr == nil && af != bf {
		if af < bf {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
