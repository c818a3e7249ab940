package surveypackage

import (
	packagestore "survey-package-backend/lib/survey-package/package-store"
	partstore "survey-package-backend/lib/survey-package/part-store"
	sectorstore "survey-package-backend/lib/survey/sector-store"
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoadTree пакет целиком: части, темы, привязанные опросы с секторами, вопросами и вариантами ответа.
// Для согласованного чтения вызывается внутри транзакции
func LoadTree(tx *gorm.DB, packageID uint64) (*dbmodels.SurveyPackage, error) {
	rec, err := packagestore.NewInstance(tx).GetByID(packageID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пакета опросов")
	}
	if rec == nil {
		return nil, nil
	}
	rec.Parts, err = partstore.NewInstance(tx).GetPartsByPackageID(packageID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения частей пакета")
	}

	surveyIDs := []uint64{}
	seen := map[uint64]bool{}
	for _, part := range rec.Parts {
		for _, subject := range part.Subjects {
			for _, subjectSurvey := range subject.Surveys {
				if !seen[subjectSurvey.SurveyID] {
					seen[subjectSurvey.SurveyID] = true
					surveyIDs = append(surveyIDs, subjectSurvey.SurveyID)
				}
			}
		}
	}
	sectors, err := sectorstore.NewInstance(tx).GetBySurveyIDs(surveyIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения секторов опросов")
	}
	for pi := range rec.Parts {
		for si := range rec.Parts[pi].Subjects {
			subject := &rec.Parts[pi].Subjects[si]
			for ssi := range subject.Surveys {
				subjectSurvey := &subject.Surveys[ssi]
				if subjectSurvey.Survey == nil {
					continue
				}
				subjectSurvey.Survey.Sectors = sectors[subjectSurvey.SurveyID]
			}
		}
	}
	return rec, nil
}
