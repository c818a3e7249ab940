package workspacestore

import (
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Workspace) (id uint64, err error)
	GetByID(id uint64) (*dbmodels.Workspace, error)
	GetByUUID(uuid string) (*dbmodels.Workspace, error)
	List(ownerID uint64) ([]dbmodels.Workspace, error)
	Delete(id uint64) error
	AddPackage(workspaceID, packageID uint64) error
	GetPackageIDs(workspaceID uint64) ([]uint64, error)
	HasPackage(workspaceID, packageID uint64) (bool, error)
	DeleteCompositions(workspaceID uint64) error
	DeleteCompositionsByPackageID(packageID uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Workspace) (id uint64, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint64) (*dbmodels.Workspace, error) {
	return i.getBy("id = ?", id)
}

func (i impl) GetByUUID(uuid string) (*dbmodels.Workspace, error) {
	return i.getBy("uuid = ?", uuid)
}

func (i impl) List(ownerID uint64) ([]dbmodels.Workspace, error) {
	list := []dbmodels.Workspace{}
	tx := i.db.Model(&dbmodels.Workspace{})
	if ownerID != 0 {
		tx = tx.Where("owner_id = ?", ownerID)
	}
	err := tx.
		Preload("Routine").
		Preload("Routine.Details", orderDetails).
		Order("id").
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
		Delete(&dbmodels.Workspace{}).
		Error
}

func (i impl) AddPackage(workspaceID, packageID uint64) error {
	rec := dbmodels.WorkspaceComposition{
		WorkspaceID:     workspaceID,
		SurveyPackageID: packageID,
	}
	return i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
}

func (i impl) GetPackageIDs(workspaceID uint64) ([]uint64, error) {
	ids := []uint64{}
	err := i.db.
		Model(&dbmodels.WorkspaceComposition{}).
		Where("workspace_id = ?", workspaceID).
		Order("id").
		Pluck("survey_package_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) HasPackage(workspaceID, packageID uint64) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.WorkspaceComposition{}).
		Where("workspace_id = ?", workspaceID).
		Where("survey_package_id = ?", packageID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) DeleteCompositions(workspaceID uint64) error {
	return i.db.
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.WorkspaceComposition{}).
		Error
}

func (i impl) DeleteCompositionsByPackageID(packageID uint64) error {
	return i.db.
		Where("survey_package_id = ?", packageID).
		Delete(&dbmodels.WorkspaceComposition{}).
		Error
}

func (i impl) getBy(query string, arg interface{}) (*dbmodels.Workspace, error) {
	rec := dbmodels.Workspace{}
	err := i.db.
		Preload("Routine").
		Preload("Routine.Details", orderDetails).
		Where(query, arg).
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

func orderDetails(db *gorm.DB) *gorm.DB {
	return db.Order("nth_day, time, id")
}
