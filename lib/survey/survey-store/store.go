package surveystore

import (
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Survey) (id uint64, err error)
	Update(id uint64, updMap map[string]interface{}) error
	GetByID(id uint64) (*dbmodels.Survey, error)
	GetByIDs(ids []uint64) ([]dbmodels.Survey, error)
	LockByID(id uint64) (*dbmodels.Survey, error)
	List(authorID uint64) ([]dbmodels.Survey, error)
	Delete(id uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Survey) (id uint64, err error) {
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
	err := i.db.
		Model(&dbmodels.Survey{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id uint64) (*dbmodels.Survey, error) {
	rec := dbmodels.Survey{}
	err := i.db.
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

func (i impl) GetByIDs(ids []uint64) ([]dbmodels.Survey, error) {
	list := []dbmodels.Survey{}
	if len(ids) == 0 {
		return list, nil
	}
	err := i.db.
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LockByID блокирует опрос до конца транзакции, используется при полной замене секторов
func (i impl) LockByID(id uint64) (*dbmodels.Survey, error) {
	rec := dbmodels.Survey{}
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

func (i impl) List(authorID uint64) ([]dbmodels.Survey, error) {
	list := []dbmodels.Survey{}
	tx := i.db.Model(&dbmodels.Survey{})
	if authorID != 0 {
		tx = tx.Where("author_id = ?", authorID)
	}
	err := tx.
		Order("created_at desc, id desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id uint64) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Survey{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
