package packagestore

import (
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.SurveyPackage) (id uint64, err error)
	Update(id uint64, updMap map[string]interface{}) error
	GetByID(id uint64) (*dbmodels.SurveyPackage, error)
	GetByIDs(ids []uint64) ([]dbmodels.SurveyPackage, error)
	LockByID(id uint64) (*dbmodels.SurveyPackage, error)
	List(authorID uint64) ([]dbmodels.SurveyPackage, error)
	Delete(id uint64) error
	AddContacts(list []dbmodels.PackageContact) error
	DeleteContacts(packageID uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SurveyPackage) (id uint64, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) Update(id uint64, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.SurveyPackage{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) GetByID(id uint64) (*dbmodels.SurveyPackage, error) {
	rec := dbmodels.SurveyPackage{}
	err := i.db.
		Preload("Contacts", orderByID).
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

func (i impl) GetByIDs(ids []uint64) ([]dbmodels.SurveyPackage, error) {
	list := []dbmodels.SurveyPackage{}
	if len(ids) == 0 {
		return list, nil
	}
	err := i.db.
		Where("id in (?)", ids).
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LockByID блокирует пакет до конца транзакции, используется при полной замене частей
func (i impl) LockByID(id uint64) (*dbmodels.SurveyPackage, error) {
	rec := dbmodels.SurveyPackage{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
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

func (i impl) List(authorID uint64) ([]dbmodels.SurveyPackage, error) {
	list := []dbmodels.SurveyPackage{}
	tx := i.db.Model(&dbmodels.SurveyPackage{})
	if authorID != 0 {
		tx = tx.Where("author_id = ?", authorID)
	}
	err := tx.
		Preload("Contacts", orderByID).
		Order("created_at desc, id desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id uint64) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.SurveyPackage{}).
		Error
}

func (i impl) AddContacts(list []dbmodels.PackageContact) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Create(&list).
		Error
}

func (i impl) DeleteContacts(packageID uint64) error {
	return i.db.
		Where("survey_package_id = ?", packageID).
		Delete(&dbmodels.PackageContact{}).
		Error
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
