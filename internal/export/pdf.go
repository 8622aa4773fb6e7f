package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pkg/errors"
)

var (
	pdfGold     = &props.Color{Red: 184, Green: 147, Blue: 48}
	pdfHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfRowEven  = &props.Color{Red: 245, Green: 245, Blue: 245}
	pdfGrayText = &props.Color{Red: 120, Green: 120, Blue: 120}
)

// GeneratePDF monta o documento de cotação em PDF a partir do modelo comum
func GeneratePDF(in RenderInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   pdfGrayText,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, in)

	if in.Legacy {
		addPDFLegacyNotice(m, in)
	} else {
		addPDFCostTable(m, in)
		addPDFSummary(m, in)
	}

	addPDFFooter(m, in)

	doc, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar PDF")
	}

	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, in RenderInput) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(in.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: pdfGold,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("PREPARADO PARA: %s", in.ClientName), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Ref: %s  |  Fecha: %s", in.Reference, in.CreatedAt.Format("2006-01-02")), props.Text{
					Size:  9,
					Align: align.Right,
					Color: pdfGrayText,
				}),
			),
		),
	)

	// Resumo executivo
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("RESUMEN EJECUTIVO", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Color: pdfGold,
				}),
			),
		),
	)
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(in.Description, props.Text{
					Size:  10,
					Align: align.Left,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addPDFLegacyNotice(m core.Maroto, in RenderInput) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Cotización legada: sin desglose de costos disponible", props.Text{
					Size:  9,
					Align: align.Left,
					Color: pdfGrayText,
				}),
			),
		),
	)
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(
				text.New("COSTO ESTIMADO", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
			col.New(4).Add(
				text.New(in.Money(in.MonthlyTotal), props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)
}

func addPDFCostTable(m core.Maroto, in RenderInput) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("DETALLE DE INVERSIÓN (ESTIMADO)", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Color: pdfGold,
				}),
			),
		),
	)

	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: pdfHeaderBg}

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(text.New("DESCRIPCIÓN", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("CANT.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("MENSUAL", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("TOTAL", headerText)).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 8, Align: align.Left}
	rightText := props.Text{Size: 8, Align: align.Right}
	centerText := props.Text{Size: 8, Align: align.Center}
	evenCell := &props.Cell{BackgroundColor: pdfRowEven}

	for i, line := range in.Lines {
		colDesc := col.New(5).Add(text.New(line.Description, baseText))
		colQty := col.New(2).Add(text.New(line.Quantity, centerText))
		colMonthly := col.New(2).Add(text.New(in.Money(line.Monthly), rightText))
		colTotal := col.New(3).Add(text.New(in.Money(line.Total), rightText))

		if i%2 == 1 {
			colDesc = colDesc.WithStyle(evenCell)
			colQty = colQty.WithStyle(evenCell)
			colMonthly = colMonthly.WithStyle(evenCell)
			colTotal = colTotal.WithStyle(evenCell)
		}

		m.AddRows(row.New(7).Add(colDesc, colQty, colMonthly, colTotal))
	}
}

func addPDFSummary(m core.Maroto, in RenderInput) {
	m.AddRows(row.New(4))

	labelStyle := props.Text{Size: 9, Align: align.Right}
	valueStyle := props.Text{Size: 9, Align: align.Right}

	for _, summary := range in.Summary {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(summary.Label, labelStyle)),
				col.New(4).Add(text.New(in.Money(summary.Value), valueStyle)),
			),
		)
	}

	boldLabel := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Subtotal Mensual", boldLabel)),
			col.New(4).Add(text.New(in.Money(in.MonthlyTotal), boldLabel)),
		),
	)

	goldCell := &props.Cell{BackgroundColor: pdfGold}
	totalText := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	totalLabel := "INVERSIÓN TOTAL"
	if in.Duration != "" {
		totalLabel = fmt.Sprintf("INVERSIÓN TOTAL (%s)", in.Duration)
	}

	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(text.New(totalLabel, totalText)).WithStyle(goldCell),
			col.New(4).Add(text.New(in.Money(in.Projected), totalText)).WithStyle(goldCell),
		),
	)
}

func addPDFFooter(m core.Maroto, in RenderInput) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("%s — documento generado automáticamente, válido por 30 días", in.CompanyName),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: pdfGrayText,
					},
				),
			),
		),
	)
}
