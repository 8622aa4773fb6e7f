package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

var listHeaders = []string{"Referencia", "Cliente", "Tipo de Servicio", "Status", "Costo Estimado", "Creada"}

// GenerateExcel monta a planilha de listagem de cotações do painel admin
func GenerateExcel(quotes []*domain.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Cotizaciones"

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "erro ao nomear planilha")
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{14, 32, 18, 14, 18, 14}
	for i, column := range columns {
		if err := f.SetColWidth(sheetName, column, column, widths[i]); err != nil {
			return nil, errors.Wrapf(err, "erro ao definir largura da coluna %s", column)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar estilo de cabeçalho")
	}

	lastCol := columns[len(columns)-1]
	for i, header := range listHeaders {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	row := 2
	for _, quote := range quotes {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeCell(quote.Reference))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeCell(quote.ClientName))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeCell(quote.ServiceType))
		f.SetCellValue(sheetName, "D"+rowStr, string(quote.Status))
		f.SetCellValue(sheetName, "E"+rowStr, utils.FormatMoney(quote.EstimatedCost))
		f.SetCellValue(sheetName, "F"+rowStr, quote.CreatedAt.Format("2006-01-02"))

		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "erro ao escrever planilha")
	}

	return buf.Bytes(), nil
}

// sanitizeCell evita injeção de fórmula: células iniciando com =, +, -, @,
// \t ou \r são interpretadas como fórmula pelo Excel.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
