package db

import (
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info("Миграция прошла успешно")
	return nil
}

// Migrate порядок важен: родительские таблицы создаются раньше дочерних
func Migrate(tx *gorm.DB) error {
	modelList := []struct {
		name  string
		model interface{}
	}{
		{"Survey", &dbmodels.Survey{}},
		{"SurveySector", &dbmodels.SurveySector{}},
		{"SectorQuestion", &dbmodels.SectorQuestion{}},
		{"QuestionChoice", &dbmodels.QuestionChoice{}},
		{"SurveyPackage", &dbmodels.SurveyPackage{}},
		{"PackageContact", &dbmodels.PackageContact{}},
		{"PackagePart", &dbmodels.PackagePart{}},
		{"PackageSubject", &dbmodels.PackageSubject{}},
		{"PackageSubjectSurvey", &dbmodels.PackageSubjectSurvey{}},
		{"Workspace", &dbmodels.Workspace{}},
		{"WorkspaceComposition", &dbmodels.WorkspaceComposition{}},
		{"Routine", &dbmodels.Routine{}},
		{"RoutineDetail", &dbmodels.RoutineDetail{}},
		{"QuestionAnswer", &dbmodels.QuestionAnswer{}},
		{"Respondent", &dbmodels.Respondent{}},
	}
	for _, item := range modelList {
		if err := tx.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", item.name)
		}
	}
	return nil
}
