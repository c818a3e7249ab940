package workspace

import (
	"strings"
	"survey-package-backend/db"
	answerstore "survey-package-backend/lib/answer/answer-store"
	surveypackage "survey-package-backend/lib/survey-package"
	packagestore "survey-package-backend/lib/survey-package/package-store"
	apperrors "survey-package-backend/lib/utils/app-errors"
	shortid "survey-package-backend/lib/utils/short-id"
	routinestore "survey-package-backend/lib/workspace/routine-store"
	workspacestore "survey-package-backend/lib/workspace/workspace-store"
	packageapimodels "survey-package-backend/models/api/survey-package"
	workspaceapimodels "survey-package-backend/models/api/workspace"
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(ownerID uint64, data workspaceapimodels.WorkspaceData) (*workspaceapimodels.WorkspaceView, error)
	Get(id uint64) (*workspaceapimodels.WorkspaceView, error)
	List(ownerID uint64) ([]workspaceapimodels.WorkspaceView, error)
	Delete(id uint64) error
	AddSurveyPackages(workspaceID uint64, data workspaceapimodels.AddPackagesData) (*workspaceapimodels.WorkspaceView, error)
	CreateRoutine(workspaceID uint64, data workspaceapimodels.RoutineData) (*workspaceapimodels.RoutineView, error)
	KickOff(data workspaceapimodels.KickOffData) (*workspaceapimodels.KickOffView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db:             DB,
		workspaceStore: workspacestore.NewInstance(DB),
	}
}

type impl struct {
	db             *gorm.DB
	workspaceStore workspacestore.Provider
}

func (i impl) Create(ownerID uint64, data workspaceapimodels.WorkspaceData) (*workspaceapimodels.WorkspaceView, error) {
	rec := dbmodels.Workspace{
		OwnerID:    ownerID,
		Name:       data.Name,
		UUID:       shortid.New(),
		AccessCode: data.AccessCode,
	}
	id, err := i.workspaceStore.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания рабочего пространства")
	}
	log.WithField("workspace_id", id).Info("рабочее пространство создано")
	return i.Get(id)
}

func (i impl) Get(id uint64) (*workspaceapimodels.WorkspaceView, error) {
	rec, err := i.workspaceStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения рабочего пространства")
	}
	if rec == nil {
		return nil, apperrors.NotFound("рабочее пространство %d не найдено", id)
	}
	packageIDs, err := i.workspaceStore.GetPackageIDs(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пакетов рабочего пространства")
	}
	result := workspaceapimodels.WorkspaceConvert(*rec, packageIDs)
	return &result, nil
}

func (i impl) List(ownerID uint64) ([]workspaceapimodels.WorkspaceView, error) {
	list, err := i.workspaceStore.List(ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка рабочих пространств")
	}
	result := make([]workspaceapimodels.WorkspaceView, 0, len(list))
	for _, rec := range list {
		packageIDs, err := i.workspaceStore.GetPackageIDs(rec.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения пакетов рабочего пространства")
		}
		result = append(result, workspaceapimodels.WorkspaceConvert(rec, packageIDs))
	}
	return result, nil
}

func (i impl) Delete(id uint64) error {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := workspacestore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения рабочего пространства")
		}
		if rec == nil {
			return apperrors.NotFound("рабочее пространство %d не найдено", id)
		}
		err = answerstore.NewInstance(tx).DeleteByWorkspaceID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления ответов рабочего пространства")
		}
		err = routinestore.NewInstance(tx).DeleteByWorkspaceID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления расписания")
		}
		err = store.DeleteCompositions(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления состава рабочего пространства")
		}
		err = store.Delete(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления рабочего пространства")
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithField("workspace_id", id).Info("рабочее пространство удалено")
	return nil
}

func (i impl) AddSurveyPackages(workspaceID uint64, data workspaceapimodels.AddPackagesData) (*workspaceapimodels.WorkspaceView, error) {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := workspacestore.NewInstance(tx)
		rec, err := store.GetByID(workspaceID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения рабочего пространства")
		}
		if rec == nil {
			return apperrors.NotFound("рабочее пространство %d не найдено", workspaceID)
		}
		packages, err := packagestore.NewInstance(tx).GetByIDs(data.SurveyPackages)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакетов опросов")
		}
		existing := make(map[uint64]bool, len(packages))
		for _, pkg := range packages {
			existing[pkg.ID] = true
		}
		for _, packageID := range data.SurveyPackages {
			if !existing[packageID] {
				return apperrors.NotFound("пакет опросов %d не найден", packageID)
			}
			included, err := store.HasPackage(workspaceID, packageID)
			if err != nil {
				return errors.Wrap(err, "ошибка проверки состава рабочего пространства")
			}
			if included {
				return apperrors.Conflict("пакет опросов %d уже входит в рабочее пространство", packageID)
			}
			err = store.AddPackage(workspaceID, packageID)
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.Conflict("пакет опросов %d уже входит в рабочее пространство", packageID)
				}
				return errors.Wrap(err, "ошибка добавления пакета в рабочее пространство")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return i.Get(workspaceID)
}

func (i impl) CreateRoutine(workspaceID uint64, data workspaceapimodels.RoutineData) (*workspaceapimodels.RoutineView, error) {
	var routine *dbmodels.Routine
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := workspacestore.NewInstance(tx)
		rec, err := store.GetByID(workspaceID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения рабочего пространства")
		}
		if rec == nil {
			return apperrors.NotFound("рабочее пространство %d не найдено", workspaceID)
		}
		if rec.Routine != nil {
			return apperrors.Conflict("у рабочего пространства %d уже есть расписание", workspaceID)
		}
		kickOff, err := packagestore.NewInstance(tx).GetByID(data.KickOff)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if kickOff == nil {
			return apperrors.NotFound("пакет опросов %d не найден", data.KickOff)
		}

		routineStore := routinestore.NewInstance(tx)
		newRoutine := dbmodels.Routine{
			WorkspaceID: workspaceID,
			KickOffID:   data.KickOff,
			Duration:    data.Duration,
		}
		err = routineStore.Create(&newRoutine)
		if err != nil {
			return errors.Wrap(err, "ошибка создания расписания")
		}

		details := make([]dbmodels.RoutineDetail, 0, len(data.Routines))
		seen := map[detailKey]bool{}
		for _, item := range data.Routines {
			included, err := store.HasPackage(workspaceID, item.SurveyPackage)
			if err != nil {
				return errors.Wrap(err, "ошибка проверки состава рабочего пространства")
			}
			if !included {
				return apperrors.NotFound("пакет опросов %d не входит в рабочее пространство", item.SurveyPackage)
			}
			key := detailKey{nthDay: item.NthDay, time: item.Time, packageID: item.SurveyPackage}
			if seen[key] {
				return apperrors.Conflict("назначение пакета %d на день %d в %s повторяется", item.SurveyPackage, item.NthDay, item.Time)
			}
			seen[key] = true
			details = append(details, dbmodels.RoutineDetail{
				RoutineID:       newRoutine.ID,
				NthDay:          item.NthDay,
				Time:            item.Time,
				SurveyPackageID: item.SurveyPackage,
			})
		}
		err = routineStore.CreateDetails(details)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("назначение пакета в расписании повторяется")
			}
			return errors.Wrap(err, "ошибка создания назначений расписания")
		}
		routine, err = routineStore.GetByWorkspaceID(workspaceID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения расписания")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.WithField("workspace_id", workspaceID).Info("расписание рабочего пространства создано")
	result := workspaceapimodels.RoutineConvert(*routine)
	return &result, nil
}

type detailKey struct {
	nthDay    int
	time      string
	packageID uint64
}

// KickOff вход респондента: по ключу и коду доступа отдает вводный пакет опросов целиком
func (i impl) KickOff(data workspaceapimodels.KickOffData) (*workspaceapimodels.KickOffView, error) {
	workspaceUUID, respondentID, ok := shortid.SplitKey(strings.TrimSpace(data.Key))
	if !ok {
		return nil, apperrors.InvalidInput("некорректный ключ респондента")
	}
	workspace, err := i.workspaceStore.GetByUUID(workspaceUUID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения рабочего пространства")
	}
	if workspace == nil {
		return nil, apperrors.NotFound("рабочее пространство %s не найдено", workspaceUUID)
	}
	if workspace.AccessCode != data.Code {
		return nil, apperrors.Unprocessable("неверный код доступа")
	}
	if workspace.Routine == nil {
		return nil, apperrors.NotFound("у рабочего пространства %d нет расписания", workspace.ID)
	}
	pkg, err := surveypackage.LoadTree(i.db, workspace.Routine.KickOffID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperrors.NotFound("пакет опросов %d не найден", workspace.Routine.KickOffID)
	}
	routine := workspaceapimodels.RoutineConvert(*workspace.Routine)
	return &workspaceapimodels.KickOffView{
		Workspace:    workspace.UUID,
		RespondentID: respondentID,
		Package:      packageapimodels.PackageConvert(*pkg),
		Routine:      &routine,
	}, nil
}
