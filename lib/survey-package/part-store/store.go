package partstore

import (
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	CreatePart(rec *dbmodels.PackagePart) error
	UpdatePartTitle(id uint64, title string) error
	GetPart(id uint64) (*dbmodels.PackagePart, error)
	GetPartsByPackageID(packageID uint64) ([]dbmodels.PackagePart, error)
	DeletePart(id uint64) error
	DeleteByPackageID(packageID uint64) error
	CreateSubject(rec *dbmodels.PackageSubject) error
	GetSubject(id uint64) (*dbmodels.PackageSubject, error)
	UpdateSubject(id uint64, updMap map[string]interface{}) error
	DeleteSubject(id uint64) error
	CreateSubjectSurveys(list []dbmodels.PackageSubjectSurvey) error
	DeleteSubjectSurveysBySubjectID(subjectID uint64) error
	DeleteSubjectSurveysBySurveyID(surveyID uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreatePart(rec *dbmodels.PackagePart) error {
	return i.db.
		Omit(clause.Associations).
		Create(rec).
		Error
}

func (i impl) UpdatePartTitle(id uint64, title string) error {
	return i.db.
		Model(&dbmodels.PackagePart{}).
		Where("id = ?", id).
		Update("title", title).
		Error
}

func (i impl) GetPart(id uint64) (*dbmodels.PackagePart, error) {
	rec := dbmodels.PackagePart{}
	err := i.withSubjects(i.db).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetPartsByPackageID(packageID uint64) ([]dbmodels.PackagePart, error) {
	list := []dbmodels.PackagePart{}
	err := i.withSubjects(i.db).
		Where("survey_package_id = ?", packageID).
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeletePart(id uint64) error {
	subjectIDs := i.db.
		Model(&dbmodels.PackageSubject{}).
		Select("id").
		Where("package_part_id = ?", id)
	err := i.db.
		Where("subject_id in (?)", subjectIDs).
		Delete(&dbmodels.PackageSubjectSurvey{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("package_part_id = ?", id).
		Delete(&dbmodels.PackageSubject{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.PackagePart{}).
		Error
}

// DeleteByPackageID удаляет части пакета вместе с темами и привязками опросов, сами опросы не трогает
func (i impl) DeleteByPackageID(packageID uint64) error {
	partIDs := i.db.
		Model(&dbmodels.PackagePart{}).
		Select("id").
		Where("survey_package_id = ?", packageID)
	subjectIDs := i.db.
		Model(&dbmodels.PackageSubject{}).
		Select("id").
		Where("package_part_id in (?)", partIDs)
	err := i.db.
		Where("subject_id in (?)", subjectIDs).
		Delete(&dbmodels.PackageSubjectSurvey{}).
		Error
	if err != nil {
		return err
	}
	err = i.db.
		Where("package_part_id in (?)", partIDs).
		Delete(&dbmodels.PackageSubject{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("survey_package_id = ?", packageID).
		Delete(&dbmodels.PackagePart{}).
		Error
}

func (i impl) CreateSubject(rec *dbmodels.PackageSubject) error {
	return i.db.
		Omit(clause.Associations).
		Create(rec).
		Error
}

func (i impl) GetSubject(id uint64) (*dbmodels.PackageSubject, error) {
	rec := dbmodels.PackageSubject{}
	err := i.db.
		Preload("Surveys", orderByID).
		Preload("Surveys.Survey").
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateSubject(id uint64, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.PackageSubject{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) DeleteSubject(id uint64) error {
	err := i.DeleteSubjectSurveysBySubjectID(id)
	if err != nil {
		return err
	}
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.PackageSubject{}).
		Error
}

func (i impl) CreateSubjectSurveys(list []dbmodels.PackageSubjectSurvey) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Omit(clause.Associations).
		Create(&list).
		Error
}

func (i impl) DeleteSubjectSurveysBySubjectID(subjectID uint64) error {
	return i.db.
		Where("subject_id = ?", subjectID).
		Delete(&dbmodels.PackageSubjectSurvey{}).
		Error
}

func (i impl) DeleteSubjectSurveysBySurveyID(surveyID uint64) error {
	return i.db.
		Where("survey_id = ?", surveyID).
		Delete(&dbmodels.PackageSubjectSurvey{}).
		Error
}

func (i impl) withSubjects(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Subjects", orderByID).
		Preload("Subjects.Surveys", orderByID).
		Preload("Subjects.Surveys.Survey")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
