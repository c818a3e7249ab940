package survey

import (
	"survey-package-backend/db"
	partstore "survey-package-backend/lib/survey-package/part-store"
	sectorstore "survey-package-backend/lib/survey/sector-store"
	surveystore "survey-package-backend/lib/survey/survey-store"
	apperrors "survey-package-backend/lib/utils/app-errors"
	"survey-package-backend/models"
	surveyapimodels "survey-package-backend/models/api/survey"
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(authorID uint64, data surveyapimodels.SurveyData) (*surveyapimodels.SurveyView, error)
	Get(id uint64) (*surveyapimodels.SurveyView, error)
	List(authorID uint64) ([]surveyapimodels.SurveyView, error)
	Update(id uint64, data surveyapimodels.SurveyData) error
	Delete(id uint64) error
	ComposeSectors(surveyID uint64, sectors []surveyapimodels.SectorData) ([]surveyapimodels.SectorView, error)
	DeleteRelatedSectors(surveyID uint64) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db:          DB,
		surveyStore: surveystore.NewInstance(DB),
		sectorStore: sectorstore.NewInstance(DB),
	}
}

type impl struct {
	db          *gorm.DB
	surveyStore surveystore.Provider
	sectorStore sectorstore.Provider
}

func (i impl) Create(authorID uint64, data surveyapimodels.SurveyData) (*surveyapimodels.SurveyView, error) {
	rec := dbmodels.Survey{
		Title:       data.Title,
		Description: data.Description,
		Abbr:        data.Abbr,
		AuthorID:    authorID,
	}
	id, err := i.surveyStore.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания опроса")
	}
	log.WithField("survey_id", id).Info("опрос создан")
	return i.Get(id)
}

func (i impl) Get(id uint64) (*surveyapimodels.SurveyView, error) {
	rec, err := i.surveyStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения опроса")
	}
	if rec == nil {
		return nil, apperrors.NotFound("опрос %d не найден", id)
	}
	rec.Sectors, err = i.sectorStore.GetBySurveyID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения секторов опроса")
	}
	result := surveyapimodels.SurveyConvert(*rec)
	return &result, nil
}

func (i impl) List(authorID uint64) ([]surveyapimodels.SurveyView, error) {
	list, err := i.surveyStore.List(authorID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка опросов")
	}
	result := make([]surveyapimodels.SurveyView, 0, len(list))
	for _, rec := range list {
		result = append(result, surveyapimodels.SurveyConvert(rec))
	}
	return result, nil
}

func (i impl) Update(id uint64, data surveyapimodels.SurveyData) error {
	rec, err := i.surveyStore.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения опроса")
	}
	if rec == nil {
		return apperrors.NotFound("опрос %d не найден", id)
	}
	updMap := map[string]interface{}{
		"Title":       data.Title,
		"Description": data.Description,
		"Abbr":        data.Abbr,
	}
	err = i.surveyStore.Update(id, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка изменения опроса")
	}
	return nil
}

// Delete удаляет опрос со всеми секторами и его привязки к темам пакетов
func (i impl) Delete(id uint64) error {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := surveystore.NewInstance(tx).LockByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения опроса")
		}
		if rec == nil {
			return apperrors.NotFound("опрос %d не найден", id)
		}
		err = sectorstore.NewInstance(tx).DeleteBySurveyID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления секторов опроса")
		}
		err = partstore.NewInstance(tx).DeleteSubjectSurveysBySurveyID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления привязок опроса к темам")
		}
		err = surveystore.NewInstance(tx).Delete(id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления опроса")
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithField("survey_id", id).Info("опрос удален")
	return nil
}

func (i impl) ComposeSectors(surveyID uint64, sectors []surveyapimodels.SectorData) ([]surveyapimodels.SectorView, error) {
	err := surveyapimodels.ValidateSectors(sectors)
	if err != nil {
		return nil, err
	}
	var list []dbmodels.SurveySector
	err = i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := surveystore.NewInstance(tx).LockByID(surveyID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения опроса")
		}
		if rec == nil {
			return apperrors.NotFound("опрос %d не найден", surveyID)
		}
		sectorStore := sectorstore.NewInstance(tx)
		err = sectorStore.DeleteBySurveyID(surveyID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления секторов опроса")
		}
		err = composeSectors(sectorStore, surveyID, sectors)
		if err != nil {
			return err
		}
		list, err = sectorStore.GetBySurveyID(surveyID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения секторов опроса")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.
		WithField("survey_id", surveyID).
		WithField("sectors", len(list)).
		Info("сектора опроса пересобраны")
	result := make([]surveyapimodels.SectorView, 0, len(list))
	for _, sector := range list {
		result = append(result, surveyapimodels.SectorConvert(sector))
	}
	return result, nil
}

func (i impl) DeleteRelatedSectors(surveyID uint64) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := surveystore.NewInstance(tx).LockByID(surveyID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения опроса")
		}
		if rec == nil {
			return apperrors.NotFound("опрос %d не найден", surveyID)
		}
		err = sectorstore.NewInstance(tx).DeleteBySurveyID(surveyID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления секторов опроса")
		}
		return nil
	})
}

type sectorLink struct {
	questionID uint64
	position   int
}

// composeSectors создает сектора в порядке запроса, linked_sector разрешается после создания всех секторов
func composeSectors(store sectorstore.Provider, surveyID uint64, sectors []surveyapimodels.SectorData) error {
	sectorIDs := make([]uint64, 0, len(sectors))
	links := []sectorLink{}
	for _, sectorData := range sectors {
		sector := dbmodels.SurveySector{
			SurveyID:     surveyID,
			Title:        sectorData.Title,
			Description:  sectorData.Description,
			QuestionType: sectorData.QuestionType,
			IsLinked:     sectorData.IsLinked,
			ChoiceSet:    sectorData.ChoiceSet(),
		}
		err := store.CreateSector(&sector)
		if err != nil {
			return errors.Wrap(err, "ошибка создания сектора")
		}
		sectorIDs = append(sectorIDs, sector.ID)

		if sector.ChoiceSet == models.ChoiceSetShared {
			err = store.CreateChoices(choicesToDbModels(sectorData.CommonChoices, models.ChoiceOwnerSector, sector.ID))
			if err != nil {
				return errors.Wrap(err, "ошибка создания общих вариантов ответа")
			}
		}

		for _, questionData := range sectorData.Questions {
			question := dbmodels.SectorQuestion{
				SectorID:   sector.ID,
				Number:     questionData.Number.String(),
				Content:    questionData.Content,
				IsRequired: questionData.Required(),
			}
			err = store.CreateQuestion(&question)
			if err != nil {
				return errors.Wrap(err, "ошибка создания вопроса")
			}
			err = store.CreateChoices(choicesToDbModels(questionData.Choices, models.ChoiceOwnerQuestion, question.ID))
			if err != nil {
				return errors.Wrap(err, "ошибка создания вариантов ответа")
			}
			if questionData.LinkedSector != nil {
				links = append(links, sectorLink{questionID: question.ID, position: *questionData.LinkedSector})
			}
		}
	}
	for _, link := range links {
		err := store.SetLinkedSector(link.questionID, sectorIDs[link.position-1])
		if err != nil {
			return errors.Wrap(err, "ошибка связывания вопроса с сектором")
		}
	}
	return nil
}

func choicesToDbModels(list []surveyapimodels.ChoiceData, owner models.ChoiceOwner, ownerID uint64) []dbmodels.QuestionChoice {
	result := make([]dbmodels.QuestionChoice, 0, len(list))
	for _, choice := range list {
		result = append(result, choice.ToDbModel(owner, ownerID))
	}
	return result
}
