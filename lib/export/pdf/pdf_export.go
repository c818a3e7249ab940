package pdfexport

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const fontFamily = "ExportFont"

// ширины колонок структуры пакета, в сумме ширина альбомного A4 без полей
var structureColWidths = []float64{30, 30, 30, 22, 14, 40, 16, 50, 45}

// GenerateStructure таблица структуры пакета. Без fontFile используется стандартный шрифт,
// символы вне ASCII заменяются на "?"
func GenerateStructure(title string, headers []string, rows [][]string, fontDir, fontFile string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateStructure panic recover: %v", r)
		}
	}()
	if len(headers) != len(structureColWidths) {
		return nil, errors.Errorf("ожидалось %d колонок, получено %d", len(structureColWidths), len(headers))
	}
	pdf := fpdf.New("L", "mm", "A4", fontDir)
	tr := func(s string) string { return s }
	if fontFile != "" {
		pdf.AddUTF8Font(fontFamily, "", fontFile)
		pdf.SetFont(fontFamily, "", 8)
	} else {
		pdf.SetFont("Helvetica", "", 8)
		tr = asciiOnly
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.SetAutoPageBreak(false, 10)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFontSize(12)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFontSize(8)

	pdf.SetFillColor(230, 230, 230)
	writeRow(pdf, headers, tr, true)
	for _, row := range rows {
		writeRow(pdf, row, tr, false)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, values []string, tr func(string) string, fill bool) {
	_, fontHt := pdf.GetFontSize()
	lineHt := fontHt * 1.5
	maxLines := 1
	for idx, value := range values {
		lines := len(pdf.SplitText(tr(value), structureColWidths[idx]-2))
		if lines > maxLines {
			maxLines = lines
		}
	}
	rowHt := float64(maxLines) * lineHt

	left, _, _, bottom := pdf.GetMargins()
	_, pageHt := pdf.GetPageSize()
	if pdf.GetY()+rowHt > pageHt-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	style := "D"
	if fill {
		style = "FD"
	}
	for idx, value := range values {
		width := structureColWidths[idx]
		pdf.Rect(x, y, width, rowHt, style)
		pdf.MultiCell(width, lineHt, tr(value), "", "L", false)
		x += width
		pdf.SetXY(x, y)
	}
	pdf.SetXY(left, y+rowHt)
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > '~' {
			return '?'
		}
		return r
	}, s)
}
