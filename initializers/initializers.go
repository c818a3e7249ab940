package initializers

import (
	"context"
	"survey-package-backend/config"
	"survey-package-backend/db"
	"survey-package-backend/fiberlog"
	"survey-package-backend/lib/answer"
	"survey-package-backend/lib/export"
	xlsexport "survey-package-backend/lib/export/xls"
	"survey-package-backend/lib/survey"
	surveypackage "survey-package-backend/lib/survey-package"
	initchecker "survey-package-backend/lib/utils/init-checker"
	"survey-package-backend/lib/workspace"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	initchecker.CheckInit("db", db.DB)
	InitS3(ctx)
	xlsexport.NewHandler()
	survey.NewHandler()
	surveypackage.NewHandler()
	answer.NewHandler()
	workspace.NewHandler()
	export.NewHandler()
	initchecker.CheckInit(
		"survey", survey.Instance,
		"survey-package", surveypackage.Instance,
		"answer", answer.Instance,
		"workspace", workspace.Instance,
		"export", export.Instance,
	)
}
