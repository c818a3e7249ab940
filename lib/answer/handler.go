package answer

import (
	"strings"
	"survey-package-backend/db"
	packagestore "survey-package-backend/lib/survey-package/package-store"
	apperrors "survey-package-backend/lib/utils/app-errors"
	shortid "survey-package-backend/lib/utils/short-id"
	workspacestore "survey-package-backend/lib/workspace/workspace-store"
	answerapimodels "survey-package-backend/models/api/answer"
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Submit(packageID, userID uint64, data answerapimodels.SubmitData) (*answerapimodels.SubmitResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db:             DB,
		packageStore:   packagestore.NewInstance(DB),
		workspaceStore: workspacestore.NewInstance(DB),
	}
}

type impl struct {
	db             *gorm.DB
	packageStore   packagestore.Provider
	workspaceStore workspacestore.Provider
}

func (i impl) Submit(packageID, userID uint64, data answerapimodels.SubmitData) (*answerapimodels.SubmitResult, error) {
	err := data.Validate()
	if err != nil {
		return nil, err
	}
	workspaceUUID, respondentID, _ := shortid.SplitKey(strings.TrimSpace(data.Key))
	logger := log.
		WithField("package_id", packageID).
		WithField("respondent_id", respondentID)

	workspace, err := i.workspaceStore.GetByUUID(workspaceUUID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения рабочего пространства")
	}
	if workspace == nil {
		return nil, apperrors.NotFound("рабочее пространство %s не найдено", workspaceUUID)
	}
	logger = logger.WithField("workspace_id", workspace.ID)

	pkg, err := i.packageStore.GetByID(packageID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пакета опросов")
	}
	if pkg == nil {
		return nil, apperrors.NotFound("пакет опросов %d не найден", packageID)
	}
	inWorkspace, err := i.workspaceStore.HasPackage(workspace.ID, packageID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка проверки состава рабочего пространства")
	}
	if !inWorkspace {
		return nil, apperrors.NotFound("пакет опросов %d не входит в рабочее пространство", packageID)
	}
	if pkg.IsClosed {
		return nil, apperrors.Unprocessable("пакет опросов %d закрыт для ответов", packageID)
	}

	var answers []dbmodels.QuestionAnswer
	err = i.db.Transaction(func(tx *gorm.DB) error {
		recorder := NewRecorder(tx, workspace.ID, packageID, userID, respondentID)
		answers, err = recorder.CreateAnswers(data.Answers)
		if err != nil {
			return err
		}
		return recorder.RecordRespondent()
	})
	if err != nil {
		return nil, err
	}
	logger.WithField("answers", len(answers)).Info("ответы респондента сохранены")

	result := answerapimodels.SubmitResult{
		Workspace:    workspace.ID,
		RespondentID: respondentID,
		Answers:      make([]answerapimodels.AnswerView, 0, len(answers)),
	}
	for _, rec := range answers {
		result.Answers = append(result.Answers, answerapimodels.AnswerConvert(rec))
	}
	return &result, nil
}
