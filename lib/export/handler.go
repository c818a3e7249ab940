package export

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"survey-package-backend/config"
	"survey-package-backend/db"
	answerstore "survey-package-backend/lib/answer/answer-store"
	pdfexport "survey-package-backend/lib/export/pdf"
	exportrows "survey-package-backend/lib/export/rows"
	xlsexport "survey-package-backend/lib/export/xls"
	surveypackage "survey-package-backend/lib/survey-package"
	apperrors "survey-package-backend/lib/utils/app-errors"
	routinestore "survey-package-backend/lib/workspace/routine-store"
	workspacestore "survey-package-backend/lib/workspace/workspace-store"
	dbmodels "survey-package-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	ExportResponses(workspaceID, packageID uint64) (*File, error)
	ExportStructure(packageID uint64) (*File, error)
	ExportStructurePdf(packageID uint64) (*File, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, xlsexport.Instance, config.Conf.Export.FontDir, config.Conf.Export.FontFile)
}

func NewInstance(DB *gorm.DB, xls xlsexport.Provider, fontDir, fontFile string) Provider {
	return impl{
		db:       DB,
		xls:      xls,
		fontDir:  fontDir,
		fontFile: fontFile,
	}
}

type impl struct {
	db       *gorm.DB
	xls      xlsexport.Provider
	fontDir  string
	fontFile string
}

type File struct {
	FileName string
	Body     *bytes.Buffer
}

func (i impl) ExportResponses(workspaceID, packageID uint64) (*File, error) {
	logger := log.
		WithField("workspace_id", workspaceID).
		WithField("package_id", packageID)
	data := xlsexport.ResponseExportData{}
	err := i.readTx(func(tx *gorm.DB) error {
		workspaceStore := workspacestore.NewInstance(tx)
		workspace, err := workspaceStore.GetByID(workspaceID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения рабочего пространства")
		}
		if workspace == nil {
			return apperrors.NotFound("рабочее пространство %d не найдено", workspaceID)
		}
		inWorkspace, err := workspaceStore.HasPackage(workspaceID, packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки состава рабочего пространства")
		}
		if !inWorkspace {
			return apperrors.NotFound("пакет опросов %d не входит в рабочее пространство %d", packageID, workspaceID)
		}
		pkg, err := surveypackage.LoadTree(tx, packageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return apperrors.NotFound("пакет опросов %d не найден", packageID)
		}
		detail, err := routinestore.NewInstance(tx).GetDetail(workspaceID, packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения расписания пакета")
		}
		answerStore := answerstore.NewInstance(tx)
		respondents, err := answerStore.GetRespondents(workspaceID, packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения респондентов")
		}
		answers, err := answerStore.GetAnswers(workspaceID, packageID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения ответов")
		}

		data.WorkspaceName = workspace.Name
		data.PackageTitle = pkg.Title
		data.Package = *pkg
		if detail != nil {
			nthDay := detail.NthDay
			data.NthDay = &nthDay
			data.Time = detail.Time
		}
		data.Respondents = make([]string, 0, len(respondents))
		for _, respondent := range respondents {
			data.Respondents = append(data.Respondents, respondent.RespondentID)
		}
		data.Answers = groupByQuestion(answers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	body, err := i.xls.ExportResponses(data)
	if err != nil {
		if apperrors.IsApp(err) {
			logger.WithError(err).Error("выгрузка ответов не согласована с отметками респондентов")
		}
		return nil, err
	}
	logger.WithField("respondents", len(data.Respondents)).Info("выгрузка ответов сформирована")
	return &File{
		FileName: FileName(data.PackageTitle, "xlsx", time.Now()),
		Body:     body,
	}, nil
}

func (i impl) ExportStructure(packageID uint64) (*File, error) {
	pkg, err := i.loadPackage(packageID)
	if err != nil {
		return nil, err
	}
	body, err := i.xls.ExportStructure(*pkg)
	if err != nil {
		return nil, err
	}
	return &File{
		FileName: FileName(pkg.Title, "xlsx", time.Now()),
		Body:     body,
	}, nil
}

func (i impl) ExportStructurePdf(packageID uint64) (*File, error) {
	pkg, err := i.loadPackage(packageID)
	if err != nil {
		return nil, err
	}
	rows := exportrows.BuildStructureRows(*pkg)
	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}
	body, err := pdfexport.GenerateStructure(pkg.Title, exportrows.StructureHeaders, values, i.fontDir, i.fontFile)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return &File{
		FileName: FileName(pkg.Title, "pdf", time.Now()),
		Body:     bytes.NewBuffer(body),
	}, nil
}

func (i impl) loadPackage(packageID uint64) (*dbmodels.SurveyPackage, error) {
	var pkg *dbmodels.SurveyPackage
	err := i.readTx(func(tx *gorm.DB) error {
		var err error
		pkg, err = surveypackage.LoadTree(tx, packageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return apperrors.NotFound("пакет опросов %d не найден", packageID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// readTx все чтения выгрузки из одного снимка данных
func (i impl) readTx(fc func(tx *gorm.DB) error) error {
	if i.db.Dialector.Name() == "postgres" {
		return i.db.Transaction(fc, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return i.db.Transaction(fc)
}

func groupByQuestion(list []dbmodels.QuestionAnswer) map[uint64][]dbmodels.QuestionAnswer {
	result := map[uint64][]dbmodels.QuestionAnswer{}
	for _, answer := range list {
		result[answer.QuestionID] = append(result[answer.QuestionID], answer)
	}
	return result
}

// FileName "<название пакета с _ вместо пробелов>-<ГГГГММДДЧЧММ>.<ext>"
func FileName(title, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", strings.ReplaceAll(title, " ", "_"), now.Format("200601021504"), ext)
}
