package xlsexport

import (
	"bytes"
	"strconv"
	"strings"
	exportrows "survey-package-backend/lib/export/rows"
	apperrors "survey-package-backend/lib/utils/app-errors"
	dbmodels "survey-package-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportResponses(data ResponseExportData) (*bytes.Buffer, error)
	ExportStructure(pkg dbmodels.SurveyPackage) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// ResponseExportData все, что нужно для выгрузки ответов, прочитанное в одной транзакции
type ResponseExportData struct {
	WorkspaceName string
	PackageTitle  string
	NthDay        *int   // nil, если пакет не назначен в расписании
	Time          string // ЧЧ:ММ
	Respondents   []string
	Package       dbmodels.SurveyPackage
	Answers       map[uint64][]dbmodels.QuestionAnswer // по вопросу, в порядке respondent_id
}

var responseHeaders = []string{"워크스페이스", "설문 제목", "차시 (일)", "응답 지정 일시", "피험자ID"}

const (
	respondentCol = 5
	firstDataRow  = 2
)

func (i impl) ExportResponses(data ResponseExportData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	_, err := writeHeader(f, sheet, 0, responseHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	err = writeResponseMeta(f, sheet, data)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования данных пакета в xlsx")
	}
	rowByRespondent, err := writeRespondents(f, sheet, data.Respondents)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования списка респондентов в xlsx")
	}
	lastCol, err := writeAnswerColumns(f, sheet, data, rowByRespondent)
	if err != nil {
		if apperrors.IsApp(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "ошибка формирования ответов в xlsx")
	}
	if lastCol > len(responseHeaders) {
		headerStyle, err := newHeaderStyle(f)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
		}
		if err = applyStyle(f, sheet, headerStyle, len(responseHeaders)+1, 1, lastCol, 1); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
		}
	}
	f.SetSheetName(sheet, "응답")
	return f.WriteToBuffer()
}

func writeResponseMeta(f *excelize.File, sheet string, data ResponseExportData) error {
	row := firstDataRow
	if err := writeColumn(f, sheet, 1, row, data.WorkspaceName); err != nil {
		return err
	}
	if err := writeColumn(f, sheet, 2, row, data.PackageTitle); err != nil {
		return err
	}
	if data.NthDay != nil {
		if err := writeColumn(f, sheet, 3, row, *data.NthDay); err != nil {
			return err
		}
	}
	if data.Time != "" {
		if err := writeColumn(f, sheet, 4, row, data.Time); err != nil {
			return err
		}
	}
	return nil
}

// writeRespondents строка респондента вычисляется один раз и используется для всех колонок с ответами
func writeRespondents(f *excelize.File, sheet string, respondents []string) (map[string]int, error) {
	rowByRespondent := make(map[string]int, len(respondents))
	for idx, respondentID := range respondents {
		row := firstDataRow + idx
		rowByRespondent[respondentID] = row
		if err := writeColumn(f, sheet, respondentCol, row, respondentID); err != nil {
			return nil, err
		}
	}
	return rowByRespondent, nil
}

func writeAnswerColumns(f *excelize.File, sheet string, data ResponseExportData, rowByRespondent map[string]int) (int, error) {
	numberStyle, err := newNumberStyle(f)
	if err != nil {
		return 0, err
	}
	col := len(responseHeaders)
	for _, column := range exportrows.BuildResponseColumns(data.Package) {
		col++
		if err = writeColumnIfEmpty(f, sheet, col, 1, column.Header); err != nil {
			return col, err
		}
		answers := data.Answers[column.QuestionID]
		if len(answers) != len(data.Respondents) {
			return col, apperrors.Internal("колонка %s: ответов %d, респондентов %d", column.Header, len(answers), len(data.Respondents))
		}
		written := make(map[int]bool, len(answers))
		for _, answer := range answers {
			row, ok := rowByRespondent[answer.RespondentID]
			if !ok {
				return col, apperrors.Internal("колонка %s: ответ респондента %s без отметки об отправке", column.Header, answer.RespondentID)
			}
			if written[row] {
				return col, apperrors.Internal("колонка %s: повторный ответ респондента %s", column.Header, answer.RespondentID)
			}
			written[row] = true
			value := strings.ReplaceAll(answer.Answer, "$", ", ")
			if column.QuestionType.IsNumeric() {
				if number, convErr := strconv.Atoi(value); convErr == nil {
					if err = writeIntColumn(f, sheet, col, row, number, numberStyle); err != nil {
						return col, err
					}
					continue
				}
			}
			if err = writeColumn(f, sheet, col, row, value); err != nil {
				return col, err
			}
		}
	}
	return col, nil
}

func (i impl) ExportStructure(pkg dbmodels.SurveyPackage) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, exportrows.StructureHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	rows := exportrows.BuildStructureRows(pkg)
	if len(rows) != 0 {
		row, err = writeStructureData(f, sheet, rows, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "구조")
	return f.WriteToBuffer()
}

func writeStructureData(f *excelize.File, sheet string, rows []exportrows.StructureRow, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(exportrows.StructureHeaders), row+len(rows)); err != nil {
		return row, err
	}
	for _, item := range rows {
		row++
		for idx, value := range item.Values() {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
