package dbmodels

import (
	"survey-package-backend/models"
)

type SurveyPackage struct {
	BaseModel
	AuthorID    uint64           `gorm:"index"`
	Title       string           `gorm:"type:varchar(100);not null"`
	Logo        string           `gorm:"type:varchar(255)"` // Ключ объекта в S3
	AccessCode  string           `gorm:"type:varchar(10);not null"`
	UUID        string           `gorm:"type:varchar(22);uniqueIndex;not null"`
	IsClosed    bool             `gorm:"not null"`
	Description string           `gorm:"type:varchar(200);not null"`
	Manager     string           `gorm:"type:varchar(10);not null"`
	Contacts    []PackageContact `gorm:"foreignKey:SurveyPackageID;constraint:OnDelete:CASCADE"`
	Parts       []PackagePart    `gorm:"foreignKey:SurveyPackageID;constraint:OnDelete:CASCADE"`
}

type PackageContact struct {
	BaseModel
	SurveyPackageID uint64             `gorm:"index;not null"`
	Type            models.ContactType `gorm:"type:varchar(10);not null"`
	Content         string             `gorm:"type:varchar(50);not null"`
}

type PackagePart struct {
	BaseModel
	SurveyPackageID uint64           `gorm:"index;not null"`
	Title           string           `gorm:"type:varchar(100);not null"`
	Subjects        []PackageSubject `gorm:"foreignKey:PackagePartID;constraint:OnDelete:CASCADE"`
}

type PackageSubject struct {
	BaseModel
	PackagePartID uint64                 `gorm:"index;not null"`
	Number        int                    `gorm:"not null"`
	Title         string                 `gorm:"type:varchar(100);not null"`
	Surveys       []PackageSubjectSurvey `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

// PackageSubjectSurvey ссылается на опрос, но не владеет им
type PackageSubjectSurvey struct {
	BaseModel
	SubjectID uint64  `gorm:"index;not null"`
	SurveyID  uint64  `gorm:"index;not null"`
	Survey    *Survey `gorm:"constraint:OnDelete:CASCADE"`
	Title     *string `gorm:"type:varchar(100)"` // Заголовок вместо названия опроса
	Number    *int
}

func (s PackageSubjectSurvey) GetTitle() string {
	if s.Title != nil && *s.Title != "" {
		return *s.Title
	}
	if s.Survey != nil {
		return s.Survey.Title
	}
	return ""
}
