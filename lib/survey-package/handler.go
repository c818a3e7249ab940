package surveypackage

import (
	"context"
	"fmt"
	"io"
	"survey-package-backend/db"
	answerstore "survey-package-backend/lib/answer/answer-store"
	filestorage "survey-package-backend/lib/file-storage"
	packagestore "survey-package-backend/lib/survey-package/package-store"
	partstore "survey-package-backend/lib/survey-package/part-store"
	surveystore "survey-package-backend/lib/survey/survey-store"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/lib/utils/lock"
	shortid "survey-package-backend/lib/utils/short-id"
	routinestore "survey-package-backend/lib/workspace/routine-store"
	workspacestore "survey-package-backend/lib/workspace/workspace-store"
	packageapimodels "survey-package-backend/models/api/survey-package"
	dbmodels "survey-package-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const logoLockWait = 10 * time.Second

type Provider interface {
	Create(authorID uint64, data packageapimodels.PackageData) (*packageapimodels.PackageView, error)
	Get(id uint64) (*packageapimodels.PackageView, error)
	List(authorID uint64) ([]packageapimodels.PackageView, error)
	Update(id uint64, data packageapimodels.PackageData) error
	Delete(id uint64) error
	UploadLogo(ctx context.Context, id uint64, fileName string, fileReader io.Reader, fileSize int64, contentType string) (*packageapimodels.PackageView, error)
	AddContacts(packageID uint64, contacts packageapimodels.ContactList) (*packageapimodels.PackageView, error)
	// части
	CreatePart(packageID uint64, data packageapimodels.PartData) (*packageapimodels.PartView, error)
	CreateParts(packageID uint64, list []packageapimodels.PartData) ([]packageapimodels.PartView, error)
	ComposeParts(packageID uint64, list []packageapimodels.PartData) ([]packageapimodels.PartView, error)
	DeleteRelatedComponents(packageID uint64) error
	GetPart(id uint64) (*packageapimodels.PartView, error)
	UpdatePartTitle(id uint64, data packageapimodels.PartTitle) error
	DeletePart(id uint64) error
	// темы
	CreateSubject(partID uint64, data packageapimodels.SubjectData) (*packageapimodels.SubjectView, error)
	GetSubject(id uint64) (*packageapimodels.SubjectView, error)
	UpdateSubject(id uint64, data packageapimodels.SubjectUpdate) error
	DeleteSubject(id uint64) error
	AssociateSubjectWithSurveys(subjectID uint64, list []packageapimodels.SubjectSurveyData) (*packageapimodels.SubjectView, error)
	ReplaceSubjectSurveys(subjectID uint64, list []packageapimodels.SubjectSurveyData) (*packageapimodels.SubjectView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, filestorage.Instance)
}

func NewInstance(DB *gorm.DB, fileStorage filestorage.Provider) Provider {
	return impl{
		db:           DB,
		packageStore: packagestore.NewInstance(DB),
		partStore:    partstore.NewInstance(DB),
		fileStorage:  fileStorage,
	}
}

type impl struct {
	db           *gorm.DB
	packageStore packagestore.Provider
	partStore    partstore.Provider
	fileStorage  filestorage.Provider
}

func (i impl) Create(authorID uint64, data packageapimodels.PackageData) (*packageapimodels.PackageView, error) {
	var id uint64
	err := i.db.Transaction(func(tx *gorm.DB) error {
		rec := dbmodels.SurveyPackage{
			AuthorID:    authorID,
			Title:       data.Title,
			AccessCode:  data.AccessCode,
			UUID:        shortid.New(),
			IsClosed:    data.IsClosed,
			Description: data.Description,
			Manager:     data.Manager,
		}
		var err error
		id, err = packagestore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания пакета опросов")
		}
		if data.Contacts != nil {
			return addContacts(tx, id, *data.Contacts)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.WithField("package_id", id).Info("пакет опросов создан")
	return i.Get(id)
}

func (i impl) Get(id uint64) (*packageapimodels.PackageView, error) {
	rec, err := i.packageStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пакета опросов")
	}
	if rec == nil {
		return nil, apperrors.NotFound("пакет опросов %d не найден", id)
	}
	rec.Parts, err = i.partStore.GetPartsByPackageID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения частей пакета")
	}
	result := packageapimodels.PackageConvert(*rec)
	return &result, nil
}

func (i impl) List(authorID uint64) ([]packageapimodels.PackageView, error) {
	list, err := i.packageStore.List(authorID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пакетов опросов")
	}
	result := make([]packageapimodels.PackageView, 0, len(list))
	for _, rec := range list {
		result = append(result, packageapimodels.PackageConvert(rec))
	}
	return result, nil
}

func (i impl) Update(id uint64, data packageapimodels.PackageData) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		store := packagestore.NewInstance(tx)
		rec, err := store.LockByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if rec == nil {
			return apperrors.NotFound("пакет опросов %d не найден", id)
		}
		updMap := map[string]interface{}{
			"Title":       data.Title,
			"Description": data.Description,
			"AccessCode":  data.AccessCode,
			"Manager":     data.Manager,
			"IsClosed":    data.IsClosed,
		}
		err = store.Update(id, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения пакета опросов")
		}
		if data.Contacts == nil {
			return nil
		}
		err = store.DeleteContacts(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления контактов пакета")
		}
		return addContacts(tx, id, *data.Contacts)
	})
}

// Delete удаляет пакет со всем содержимым, ответами и назначениями; опросы остаются
func (i impl) Delete(id uint64) error {
	var logo string
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := packagestore.NewInstance(tx)
		rec, err := store.LockByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if rec == nil {
			return apperrors.NotFound("пакет опросов %d не найден", id)
		}
		logo = rec.Logo
		err = partstore.NewInstance(tx).DeleteByPackageID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления частей пакета")
		}
		err = answerstore.NewInstance(tx).DeleteByPackageID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления ответов по пакету")
		}
		routineStore := routinestore.NewInstance(tx)
		err = routineStore.DeleteDetailsByPackageID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления назначений пакета")
		}
		err = routineStore.DeleteByKickOffID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления расписаний пакета")
		}
		err = workspacestore.NewInstance(tx).DeleteCompositionsByPackageID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка исключения пакета из рабочих пространств")
		}
		err = store.DeleteContacts(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления контактов пакета")
		}
		err = store.Delete(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления пакета опросов")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger := log.WithField("package_id", id)
	if logo != "" && i.fileStorage != nil {
		err = i.fileStorage.DeleteFile(context.Background(), logo)
		if err != nil {
			logger.WithError(err).Warn("логотип пакета не удален из хранилища")
		}
	}
	logger.Info("пакет опросов удален")
	return nil
}

func (i impl) UploadLogo(ctx context.Context, id uint64, fileName string, fileReader io.Reader, fileSize int64, contentType string) (*packageapimodels.PackageView, error) {
	if i.fileStorage == nil {
		return nil, errors.New("файловое хранилище не инициализировано")
	}
	if fileName == "" {
		return nil, apperrors.InvalidInput("не указано имя файла логотипа")
	}
	// загрузки логотипа одного пакета выполняются по очереди
	success, err := lock.WithDelay(ctx, fmt.Sprintf("package_logo_%d", id), logoLockWait, func() error {
		return i.uploadLogo(ctx, id, fileName, fileReader, fileSize, contentType)
	})
	if err != nil {
		return nil, err
	}
	if !success {
		return nil, apperrors.Conflict("логотип пакета опросов %d уже загружается", id)
	}
	return i.Get(id)
}

func (i impl) uploadLogo(ctx context.Context, id uint64, fileName string, fileReader io.Reader, fileSize int64, contentType string) error {
	rec, err := i.packageStore.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения пакета опросов")
	}
	if rec == nil {
		return apperrors.NotFound("пакет опросов %d не найден", id)
	}
	key, err := i.fileStorage.UploadLogo(ctx, rec.UUID, fileName, fileReader, fileSize, contentType)
	if err != nil {
		return err
	}
	err = i.packageStore.Update(id, map[string]interface{}{"Logo": key})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения логотипа пакета")
	}
	if rec.Logo != "" && rec.Logo != key {
		err = i.fileStorage.DeleteFile(ctx, rec.Logo)
		if err != nil {
			log.WithField("package_id", id).WithError(err).Warn("старый логотип пакета не удален из хранилища")
		}
	}
	return nil
}

func (i impl) AddContacts(packageID uint64, contacts packageapimodels.ContactList) (*packageapimodels.PackageView, error) {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := packagestore.NewInstance(tx).GetByID(packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if rec == nil {
			return apperrors.NotFound("пакет опросов %d не найден", packageID)
		}
		return addContacts(tx, packageID, contacts)
	})
	if err != nil {
		return nil, err
	}
	return i.Get(packageID)
}

func (i impl) CreatePart(packageID uint64, data packageapimodels.PartData) (*packageapimodels.PartView, error) {
	list, err := i.CreateParts(packageID, []packageapimodels.PartData{data})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (i impl) CreateParts(packageID uint64, list []packageapimodels.PartData) ([]packageapimodels.PartView, error) {
	err := packageapimodels.ValidateParts(list)
	if err != nil {
		return nil, err
	}
	var result []packageapimodels.PartView
	err = i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := packagestore.NewInstance(tx).LockByID(packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if rec == nil {
			return apperrors.NotFound("пакет опросов %d не найден", packageID)
		}
		result, err = createParts(tx, packageID, list)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ComposeParts полностью заменяет части пакета
func (i impl) ComposeParts(packageID uint64, list []packageapimodels.PartData) ([]packageapimodels.PartView, error) {
	err := packageapimodels.ValidateParts(list)
	if err != nil {
		return nil, err
	}
	var result []packageapimodels.PartView
	err = i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := packagestore.NewInstance(tx).LockByID(packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if rec == nil {
			return apperrors.NotFound("пакет опросов %d не найден", packageID)
		}
		err = partstore.NewInstance(tx).DeleteByPackageID(packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления частей пакета")
		}
		result, err = createParts(tx, packageID, list)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.
		WithField("package_id", packageID).
		WithField("parts", len(result)).
		Info("части пакета пересобраны")
	return result, nil
}

func (i impl) DeleteRelatedComponents(packageID uint64) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := packagestore.NewInstance(tx).LockByID(packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пакета опросов")
		}
		if rec == nil {
			return apperrors.NotFound("пакет опросов %d не найден", packageID)
		}
		err = partstore.NewInstance(tx).DeleteByPackageID(packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления частей пакета")
		}
		return nil
	})
}

func (i impl) GetPart(id uint64) (*packageapimodels.PartView, error) {
	rec, err := i.partStore.GetPart(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения части пакета")
	}
	if rec == nil {
		return nil, apperrors.NotFound("часть пакета %d не найдена", id)
	}
	result := packageapimodels.PartConvert(*rec)
	return &result, nil
}

func (i impl) UpdatePartTitle(id uint64, data packageapimodels.PartTitle) error {
	rec, err := i.partStore.GetPart(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения части пакета")
	}
	if rec == nil {
		return apperrors.NotFound("часть пакета %d не найдена", id)
	}
	err = i.partStore.UpdatePartTitle(id, data.Title)
	if err != nil {
		return errors.Wrap(err, "ошибка изменения части пакета")
	}
	return nil
}

func (i impl) DeletePart(id uint64) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		store := partstore.NewInstance(tx)
		rec, err := store.GetPart(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения части пакета")
		}
		if rec == nil {
			return apperrors.NotFound("часть пакета %d не найдена", id)
		}
		err = store.DeletePart(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления части пакета")
		}
		return nil
	})
}

func (i impl) CreateSubject(partID uint64, data packageapimodels.SubjectData) (*packageapimodels.SubjectView, error) {
	err := data.Validate()
	if err != nil {
		return nil, err
	}
	var subjectID uint64
	err = i.db.Transaction(func(tx *gorm.DB) error {
		part, err := partstore.NewInstance(tx).GetPart(partID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения части пакета")
		}
		if part == nil {
			return apperrors.NotFound("часть пакета %d не найдена", partID)
		}
		subjectID, err = createSubject(tx, partID, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return i.GetSubject(subjectID)
}

func (i impl) GetSubject(id uint64) (*packageapimodels.SubjectView, error) {
	rec, err := i.partStore.GetSubject(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения темы")
	}
	if rec == nil {
		return nil, apperrors.NotFound("тема %d не найдена", id)
	}
	result := packageapimodels.SubjectConvert(*rec)
	return &result, nil
}

func (i impl) UpdateSubject(id uint64, data packageapimodels.SubjectUpdate) error {
	rec, err := i.partStore.GetSubject(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения темы")
	}
	if rec == nil {
		return apperrors.NotFound("тема %d не найдена", id)
	}
	updMap := map[string]interface{}{}
	if data.Number != nil {
		updMap["Number"] = *data.Number
	}
	if data.Title != nil {
		updMap["Title"] = *data.Title
	}
	err = i.partStore.UpdateSubject(id, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка изменения темы")
	}
	return nil
}

func (i impl) DeleteSubject(id uint64) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		store := partstore.NewInstance(tx)
		rec, err := store.GetSubject(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения темы")
		}
		if rec == nil {
			return apperrors.NotFound("тема %d не найдена", id)
		}
		err = store.DeleteSubject(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления темы")
		}
		return nil
	})
}

// AssociateSubjectWithSurveys добавляет опросы к теме, существующие привязки сохраняются
func (i impl) AssociateSubjectWithSurveys(subjectID uint64, list []packageapimodels.SubjectSurveyData) (*packageapimodels.SubjectView, error) {
	return i.changeSubjectSurveys(subjectID, list, false)
}

func (i impl) ReplaceSubjectSurveys(subjectID uint64, list []packageapimodels.SubjectSurveyData) (*packageapimodels.SubjectView, error) {
	return i.changeSubjectSurveys(subjectID, list, true)
}

func (i impl) changeSubjectSurveys(subjectID uint64, list []packageapimodels.SubjectSurveyData, replace bool) (*packageapimodels.SubjectView, error) {
	for _, item := range list {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := partstore.NewInstance(tx)
		rec, err := store.GetSubject(subjectID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения темы")
		}
		if rec == nil {
			return apperrors.NotFound("тема %d не найдена", subjectID)
		}
		if replace {
			err = store.DeleteSubjectSurveysBySubjectID(subjectID)
			if err != nil {
				return errors.Wrap(err, "ошибка удаления опросов темы")
			}
		}
		return associateSurveys(tx, subjectID, list)
	})
	if err != nil {
		return nil, err
	}
	return i.GetSubject(subjectID)
}

func createParts(tx *gorm.DB, packageID uint64, list []packageapimodels.PartData) ([]packageapimodels.PartView, error) {
	store := partstore.NewInstance(tx)
	result := make([]packageapimodels.PartView, 0, len(list))
	for _, data := range list {
		part := dbmodels.PackagePart{
			SurveyPackageID: packageID,
			Title:           *data.Title,
		}
		err := store.CreatePart(&part)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка создания части пакета")
		}
		for _, subjectData := range data.Subjects {
			_, err = createSubject(tx, part.ID, subjectData)
			if err != nil {
				return nil, err
			}
		}
		// перечитываем, чтобы вернуть часть вместе с созданными темами
		created, err := store.GetPart(part.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения части пакета")
		}
		result = append(result, packageapimodels.PartConvert(*created))
	}
	return result, nil
}

func createSubject(tx *gorm.DB, partID uint64, data packageapimodels.SubjectData) (uint64, error) {
	subject := dbmodels.PackageSubject{
		PackagePartID: partID,
		Number:        data.Number,
		Title:         data.Title,
	}
	err := partstore.NewInstance(tx).CreateSubject(&subject)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка создания темы")
	}
	err = associateSurveys(tx, subject.ID, data.Surveys)
	if err != nil {
		return 0, err
	}
	return subject.ID, nil
}

// associateSurveys опросы привязываются по ссылке, копии не создаются
func associateSurveys(tx *gorm.DB, subjectID uint64, list []packageapimodels.SubjectSurveyData) error {
	if len(list) == 0 {
		return nil
	}
	surveyIDs := make([]uint64, 0, len(list))
	for _, item := range list {
		surveyIDs = append(surveyIDs, item.Survey)
	}
	surveys, err := surveystore.NewInstance(tx).GetByIDs(surveyIDs)
	if err != nil {
		return errors.Wrap(err, "ошибка получения опросов")
	}
	existing := make(map[uint64]bool, len(surveys))
	for _, survey := range surveys {
		existing[survey.ID] = true
	}
	recList := make([]dbmodels.PackageSubjectSurvey, 0, len(list))
	for _, item := range list {
		if !existing[item.Survey] {
			return apperrors.NotFound("опрос %d не найден", item.Survey)
		}
		recList = append(recList, item.ToDbModel(subjectID))
	}
	err = partstore.NewInstance(tx).CreateSubjectSurveys(recList)
	if err != nil {
		return errors.Wrap(err, "ошибка привязки опросов к теме")
	}
	return nil
}

func addContacts(tx *gorm.DB, packageID uint64, contacts packageapimodels.ContactList) error {
	err := contacts.Validate()
	if err != nil {
		return err
	}
	recList := make([]dbmodels.PackageContact, 0, len(contacts))
	for _, contact := range contacts {
		recList = append(recList, dbmodels.PackageContact{
			SurveyPackageID: packageID,
			Type:            contact.Type,
			Content:         contact.Content,
		})
	}
	err = packagestore.NewInstance(tx).AddContacts(recList)
	if err != nil {
		return errors.Wrap(err, "ошибка добавления контактов пакета")
	}
	return nil
}
