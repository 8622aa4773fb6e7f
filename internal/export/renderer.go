package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/snapshot"
	"github.com/storeintelligence/quoting-api/pkg/utils"
)

// Options configura a renderização de um documento de cotação
type Options struct {
	CompanyName  string
	Currency     string
	ExchangeRate float64 // 1.0 para a moeda base
}

// CostLine é uma linha da tabela de investimento
type CostLine struct {
	Description string
	Quantity    string
	Monthly     float64
	Total       float64
}

// SummaryRow é uma linha do desglose de totais
type SummaryRow struct {
	Label string
	Value float64
}

// RenderInput é o modelo de documento comum a todos os formatos. Todos os
// valores saem do snapshot congelado, nunca de um recálculo; a taxa de câmbio
// é aplicada apenas na exibição.
type RenderInput struct {
	Title        string
	CompanyName  string
	Currency     string
	ClientName   string
	Reference    string
	Description  string
	ServiceType  string
	Status       string
	CreatedAt    time.Time
	Duration     string
	Legacy       bool
	Lines        []CostLine
	Summary      []SummaryRow
	MonthlyTotal float64
	Projected    float64
}

// BuildRenderInput projeta a cotação e seu snapshot no modelo de documento.
// Snapshots legados (sem desglose) degradam para um documento reduzido com o
// custo estimado persistido.
func BuildRenderInput(quote *domain.Quote, snap *snapshot.Snapshot, opts Options) RenderInput {
	rate := opts.ExchangeRate
	if rate <= 0 {
		rate = 1.0
	}

	in := RenderInput{
		Title:       "ESTIMACIÓN DE INVERSIÓN & ALCANCE",
		CompanyName: opts.CompanyName,
		Currency:    opts.Currency,
		ClientName:  quote.ClientName,
		Reference:   quote.Reference,
		Description: quote.Description,
		ServiceType: quote.ServiceType,
		Status:      string(quote.Status),
		CreatedAt:   quote.CreatedAt,
	}

	if in.Description == "" {
		in.Description = "Propuesta de servicios profesionales."
	}

	if !snap.HasBreakdown() {
		in.Legacy = true
		in.MonthlyTotal = quote.EstimatedCost * rate
		in.Projected = quote.EstimatedCost * rate
		return in
	}

	in.Duration = formatDuration(snap.Inputs.Duration.Value, string(snap.Inputs.Duration.Unit))

	for _, line := range snap.Lines {
		description := line.Role
		if line.Seniority != "" {
			description = fmt.Sprintf("%s (%s)", line.Role, line.Seniority)
		}

		in.Lines = append(in.Lines, CostLine{
			Description: description,
			Quantity:    fmt.Sprintf("%d Rec.", line.Headcount),
			Monthly:     line.Cost * rate,
			Total:       line.Cost * snap.DurationMonths * rate,
		})
	}

	in.Summary = []SummaryRow{
		{Label: "Subtotal Bruto", Value: snap.GrossTotal * rate},
	}
	if snap.L2SupportCost > 0 {
		in.Summary = append(in.Summary, SummaryRow{Label: "Soporte L2", Value: snap.L2SupportCost * rate})
	}
	if snap.RiskCost > 0 {
		in.Summary = append(in.Summary, SummaryRow{Label: "Riesgo por Criticidad", Value: snap.RiskCost * rate})
	}
	if snap.DiscountAmount > 0 {
		in.Summary = append(in.Summary, SummaryRow{Label: "Descuento Comercial", Value: -snap.DiscountAmount * rate})
	}
	if snap.RetentionAmount > 0 {
		in.Summary = append(in.Summary, SummaryRow{Label: "Retención", Value: -snap.RetentionAmount * rate})
	}

	in.MonthlyTotal = snap.FinalTotal * rate
	in.Projected = snap.Projected.FinalTotal * rate

	return in
}

// Money formata um valor para exibição no documento, com a moeda configurada
func (in RenderInput) Money(value float64) string {
	text := utils.FormatMoney(value)
	if in.Currency != "" {
		return fmt.Sprintf("%s %s", text, in.Currency)
	}
	return text
}

func formatDuration(value float64, unit string) string {
	text := fmt.Sprintf("%.1f", value)
	text = strings.TrimSuffix(text, ".0")
	return fmt.Sprintf("%s %s", text, strings.ToUpper(unit))
}
