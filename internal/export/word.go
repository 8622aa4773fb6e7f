package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
	"github.com/pkg/errors"
)

const wordGoldHex = "B89330"

// GenerateWord monta o documento de cotação em Word a partir do modelo comum.
// O layout segue o do PDF: título, resumen ejecutivo, detalle de inversión e
// bloco de total.
func GenerateWord(in RenderInput) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText(in.Title).Size("32").Bold().Color(wordGoldHex)

	meta := w.AddParagraph()
	meta.AddText(fmt.Sprintf("PREPARADO PARA: %s", in.ClientName)).Size("22").Bold()

	ref := w.AddParagraph()
	ref.AddText(fmt.Sprintf("Ref: %s  |  Fecha: %s", in.Reference, in.CreatedAt.Format("2006-01-02"))).Size("18")

	w.AddParagraph() // espaçador

	summaryHeading := w.AddParagraph()
	summaryHeading.AddText("1. RESUMEN EJECUTIVO").Size("28").Bold().Color(wordGoldHex)

	descPara := w.AddParagraph()
	descPara.AddText(in.Description).Size("20")

	w.AddParagraph()

	costHeading := w.AddParagraph()
	costHeading.AddText("2. DETALLE DE INVERSIÓN").Size("28").Bold().Color(wordGoldHex)

	if in.Legacy {
		legacy := w.AddParagraph()
		legacy.AddText("Cotización legada: sin desglose de costos disponible.").Size("18")

		total := w.AddParagraph()
		total.AddText(fmt.Sprintf("COSTO ESTIMADO: %s", in.Money(in.MonthlyTotal))).Size("24").Bold()
	} else {
		for _, line := range in.Lines {
			linePara := w.AddParagraph()
			linePara.AddText(fmt.Sprintf("%s — %s — %s/mes — %s",
				line.Description, line.Quantity, in.Money(line.Monthly), in.Money(line.Total))).Size("20")
		}

		w.AddParagraph()

		for _, summary := range in.Summary {
			summaryPara := w.AddParagraph()
			summaryPara.AddText(fmt.Sprintf("%s: %s", summary.Label, in.Money(summary.Value))).Size("20")
		}

		monthly := w.AddParagraph()
		monthly.AddText(fmt.Sprintf("Subtotal Mensual: %s", in.Money(in.MonthlyTotal))).Size("22").Bold()

		totalLabel := "INVERSIÓN TOTAL"
		if in.Duration != "" {
			totalLabel = fmt.Sprintf("INVERSIÓN TOTAL (%s)", in.Duration)
		}

		total := w.AddParagraph()
		total.AddText(fmt.Sprintf("%s: %s", totalLabel, in.Money(in.Projected))).Size("28").Bold().Color(wordGoldHex)
	}

	w.AddParagraph()

	footer := w.AddParagraph()
	footer.AddText(fmt.Sprintf("%s — documento generado automáticamente, válido por 30 días", in.CompanyName)).Size("14")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "erro ao gerar documento Word")
	}

	return buf.Bytes(), nil
}
