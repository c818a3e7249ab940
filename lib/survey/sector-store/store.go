package sectorstore

import (
	"survey-package-backend/models"
	dbmodels "survey-package-backend/models/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	CreateSector(rec *dbmodels.SurveySector) error
	CreateQuestion(rec *dbmodels.SectorQuestion) error
	CreateChoices(list []dbmodels.QuestionChoice) error
	SetLinkedSector(questionID, sectorID uint64) error
	GetBySurveyID(surveyID uint64) ([]dbmodels.SurveySector, error)
	GetBySurveyIDs(surveyIDs []uint64) (map[uint64][]dbmodels.SurveySector, error)
	GetExistingQuestionIDs(ids []uint64) (map[uint64]bool, error)
	DeleteBySurveyID(surveyID uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateSector(rec *dbmodels.SurveySector) error {
	return i.db.
		Omit(clause.Associations).
		Create(rec).
		Error
}

func (i impl) CreateQuestion(rec *dbmodels.SectorQuestion) error {
	return i.db.
		Omit(clause.Associations).
		Create(rec).
		Error
}

func (i impl) CreateChoices(list []dbmodels.QuestionChoice) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Create(&list).
		Error
}

func (i impl) SetLinkedSector(questionID, sectorID uint64) error {
	return i.db.
		Model(&dbmodels.SectorQuestion{}).
		Where("id = ?", questionID).
		Update("linked_sector_id", sectorID).
		Error
}

func (i impl) GetBySurveyID(surveyID uint64) ([]dbmodels.SurveySector, error) {
	result, err := i.GetBySurveyIDs([]uint64{surveyID})
	if err != nil {
		return nil, err
	}
	list, ok := result[surveyID]
	if !ok {
		return []dbmodels.SurveySector{}, nil
	}
	return list, nil
}

// GetBySurveyIDs сектора с вопросами и вариантами ответа, сгруппированные по опросу
func (i impl) GetBySurveyIDs(surveyIDs []uint64) (map[uint64][]dbmodels.SurveySector, error) {
	result := map[uint64][]dbmodels.SurveySector{}
	if len(surveyIDs) == 0 {
		return result, nil
	}
	list := []dbmodels.SurveySector{}
	err := i.db.
		Where("survey_id in (?)", surveyIDs).
		Preload("CommonChoices", orderByID).
		Preload("Questions", orderByID).
		Preload("Questions.Choices", orderByID).
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	for _, sector := range list {
		dbmodels.SortQuestions(sector.Questions)
		result[sector.SurveyID] = append(result[sector.SurveyID], sector)
	}
	return result, nil
}

func (i impl) GetExistingQuestionIDs(ids []uint64) (map[uint64]bool, error) {
	result := map[uint64]bool{}
	if len(ids) == 0 {
		return result, nil
	}
	existing := []uint64{}
	err := i.db.
		Model(&dbmodels.SectorQuestion{}).
		Where("id in (?)", ids).
		Pluck("id", &existing).
		Error
	if err != nil {
		return nil, err
	}
	for _, id := range existing {
		result[id] = true
	}
	return result, nil
}

// DeleteBySurveyID удаляет сектора опроса со всеми потомками, начиная с листьев
func (i impl) DeleteBySurveyID(surveyID uint64) error {
	sectorIDs := i.db.
		Model(&dbmodels.SurveySector{}).
		Select("id").
		Where("survey_id = ?", surveyID)
	questionIDs := i.db.
		Model(&dbmodels.SectorQuestion{}).
		Select("id").
		Where("sector_id in (?)", sectorIDs)

	err := i.db.
		Where("question_id in (?)", questionIDs).
		Delete(&dbmodels.QuestionAnswer{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("owner_type = ? and owner_id in (?)", models.ChoiceOwnerQuestion, questionIDs).
		Delete(&dbmodels.QuestionChoice{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("owner_type = ? and owner_id in (?)", models.ChoiceOwnerSector, sectorIDs).
		Delete(&dbmodels.QuestionChoice{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("sector_id in (?)", sectorIDs).
		Delete(&dbmodels.SectorQuestion{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("survey_id = ?", surveyID).
		Delete(&dbmodels.SurveySector{}).
		Error
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
