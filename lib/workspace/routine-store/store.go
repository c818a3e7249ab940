package routinestore

import (
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec *dbmodels.Routine) error
	CreateDetails(list []dbmodels.RoutineDetail) error
	GetByWorkspaceID(workspaceID uint64) (*dbmodels.Routine, error)
	GetDetail(workspaceID, packageID uint64) (*dbmodels.RoutineDetail, error)
	DeleteByWorkspaceID(workspaceID uint64) error
	DeleteByKickOffID(packageID uint64) error
	DeleteDetailsByPackageID(packageID uint64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec *dbmodels.Routine) error {
	return i.db.
		Omit(clause.Associations).
		Create(rec).
		Error
}

// CreateDetails повтор (день, время, пакет) возвращает gorm.ErrDuplicatedKey
func (i impl) CreateDetails(list []dbmodels.RoutineDetail) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Create(&list).
		Error
}

func (i impl) GetByWorkspaceID(workspaceID uint64) (*dbmodels.Routine, error) {
	rec := dbmodels.Routine{}
	err := i.db.
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("nth_day, time, id")
		}).
		Where("workspace_id = ?", workspaceID).
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

// GetDetail первое по расписанию назначение пакета в рабочем пространстве
func (i impl) GetDetail(workspaceID, packageID uint64) (*dbmodels.RoutineDetail, error) {
	rec := dbmodels.RoutineDetail{}
	err := i.db.
		Select("routine_details.*").
		Model(&dbmodels.RoutineDetail{}).
		Joins("join routines as r on r.id = routine_details.routine_id").
		Where("r.workspace_id = ?", workspaceID).
		Where("routine_details.survey_package_id = ?", packageID).
		Order("routine_details.nth_day, routine_details.time").
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

func (i impl) DeleteByWorkspaceID(workspaceID uint64) error {
	routineIDs := i.db.
		Model(&dbmodels.Routine{}).
		Select("id").
		Where("workspace_id = ?", workspaceID)
	err := i.db.
		Where("routine_id in (?)", routineIDs).
		Delete(&dbmodels.RoutineDetail{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("workspace_id = ?", workspaceID).
		Delete(&dbmodels.Routine{}).
		Error
}

// DeleteByKickOffID удаляет расписания, у которых пакет является вводным
func (i impl) DeleteByKickOffID(packageID uint64) error {
	routineIDs := i.db.
		Model(&dbmodels.Routine{}).
		Select("id").
		Where("kick_off_id = ?", packageID)
	err := i.db.
		Where("routine_id in (?)", routineIDs).
		Delete(&dbmodels.RoutineDetail{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("kick_off_id = ?", packageID).
		Delete(&dbmodels.Routine{}).
		Error
}

func (i impl) DeleteDetailsByPackageID(packageID uint64) error {
	return i.db.
		Where("survey_package_id = ?", packageID).
		Delete(&dbmodels.RoutineDetail{}).
		Error
}
