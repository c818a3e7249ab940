package answerstore

import (
	dbmodels "survey-package-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	CreateAnswers(list []dbmodels.QuestionAnswer) error
	CreateRespondent(rec *dbmodels.Respondent) error
	RespondentExist(respondentID string, packageID, workspaceID uint64) (bool, error)
	GetRespondents(workspaceID, packageID uint64) ([]dbmodels.Respondent, error)
	GetAnswers(workspaceID, packageID uint64) ([]dbmodels.QuestionAnswer, error)
	DeleteByPackageID(packageID uint64) error
	DeleteByWorkspaceID(workspaceID uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateAnswers(list []dbmodels.QuestionAnswer) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Create(&list).
		Error
}

// CreateRespondent при повторной отправке возвращает gorm.ErrDuplicatedKey (уникальный индекс idx_respondent_submission)
func (i impl) CreateRespondent(rec *dbmodels.Respondent) error {
	return i.db.
		Create(rec).
		Error
}

func (i impl) RespondentExist(respondentID string, packageID, workspaceID uint64) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Respondent{}).
		Where("respondent_id = ?", respondentID).
		Where("survey_package_id = ?", packageID).
		Where("workspace_id = ?", workspaceID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRespondents порядок по respondent_id задает строки выгрузки ответов
func (i impl) GetRespondents(workspaceID, packageID uint64) ([]dbmodels.Respondent, error) {
	list := []dbmodels.Respondent{}
	err := i.db.
		Where("workspace_id = ?", workspaceID).
		Where("survey_package_id = ?", packageID).
		Order("respondent_id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetAnswers(workspaceID, packageID uint64) ([]dbmodels.QuestionAnswer, error) {
	list := []dbmodels.QuestionAnswer{}
	err := i.db.
		Where("workspace_id = ?", workspaceID).
		Where("survey_package_id = ?", packageID).
		Order("respondent_id, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByPackageID(packageID uint64) error {
	err := i.db.
		Where("survey_package_id = ?", packageID).
		Delete(&dbmodels.QuestionAnswer{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("survey_package_id = ?", packageID).
		Delete(&dbmodels.Respondent{}).
		Error
}

func (i impl) DeleteByWorkspaceID(workspaceID uint64) error {
	err := i.db.
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.QuestionAnswer{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.Respondent{}).
		Error
}
