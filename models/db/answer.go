package dbmodels

type QuestionAnswer struct {
	BaseModel
	QuestionID      uint64 `gorm:"index;not null"`
	RespondentID    string `gorm:"type:varchar(30);index;not null"`
	WorkspaceID     uint64 `gorm:"index;not null"`
	SurveyPackageID uint64 `gorm:"index;not null"`
	Answer          string `gorm:"type:varchar(1000);not null"` // Сырой ответ, несколько значений через $
	UserID          uint64
}

// Respondent отметка о том, что респондент отправил ответы по пакету в рамках рабочего пространства
type Respondent struct {
	BaseModel
	RespondentID    string `gorm:"type:varchar(30);uniqueIndex:idx_respondent_submission;not null"`
	SurveyPackageID uint64 `gorm:"uniqueIndex:idx_respondent_submission;not null"`
	WorkspaceID     uint64 `gorm:"uniqueIndex:idx_respondent_submission;not null"`
}
