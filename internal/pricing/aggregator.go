package pricing

import (
	"errors"
	"fmt"
	"sort"
)

// ServiceType identifica o tipo de cotação
type ServiceType string

const (
	ServiceProject  ServiceType = "Proyecto"
	ServiceStaffing ServiceType = "Staffing"
	ServiceSustain  ServiceType = "Sustain"
)

var ErrUnknownServiceType = errors.New("tipo de serviço desconhecido")

// ValidServiceType verifica se o tipo de cotação é um dos três suportados
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceProject, ServiceStaffing, ServiceSustain:
		return true
	}
	return false
}

// Input reúne todos os parâmetros técnicos que alimentam a estimativa.
// Cotações Proyecto usam o mapa de roles; Staffing e Sustain usam a lista
// de perfis detalhados.
type Input struct {
	ServiceType      ServiceType    `json:"service_type"`
	Roles            map[string]int `json:"roles,omitempty"`
	Profiles         []ProfileLine  `json:"profiles,omitempty"`
	Criticality      Criticality    `json:"criticality"`
	SupportWindow    SupportWindow  `json:"support_window,omitempty"`
	DiscountEnabled  bool           `json:"discount_enabled"`
	DiscountPct      float64        `json:"discount_pct"`
	RetentionEnabled bool           `json:"retention_enabled"`
	RetentionPct     float64        `json:"retention_pct"`
	Duration         DurationSpec   `json:"duration"`
}

// LineItem é o custo calculado de um perfil da cotação.
// RateSubstituted indica que o catálogo não tinha tarifa para o par
// (role, seniority) e a tabela de fallback foi usada; o chamador deve
// registrar a substituição, pois ela afeta a precisão do faturamento.
type LineItem struct {
	Role                 string    `json:"role"`
	Seniority            Seniority `json:"seniority"`
	Skills               string    `json:"skills,omitempty"`
	Headcount            int       `json:"headcount"`
	AllocationPercentage float64   `json:"allocation_percentage"`
	MonthlyRate          float64   `json:"monthly_rate"`
	Cost                 float64   `json:"cost"`
	RateSubstituted      bool      `json:"rate_substituted,omitempty"`
}

// Breakdown é o desglose financeiro mensal de uma cotação, em USD.
// FinalTotal = GrossTotal + L2SupportCost + RiskCost − DiscountAmount −
// RetentionAmount, nunca negativo.
type Breakdown struct {
	GrossTotal      float64 `json:"grossTotal"`
	L2SupportCost   float64 `json:"l2SupportCost"`
	RiskCost        float64 `json:"riskCost"`
	DiscountAmount  float64 `json:"discountAmount"`
	RetentionAmount float64 `json:"retentionAmount"`
	TotalWithRisk   float64 `json:"totalWithRisk"`
	FinalTotal      float64 `json:"finalTotal"`
}

// Result é a saída imutável do agregador
type Result struct {
	Lines          []LineItem `json:"lines"`
	Breakdown      Breakdown  `json:"breakdown"`
	DurationMonths float64    `json:"duration_months"`
	Projected      Breakdown  `json:"projected"`
}

// Validate verifica todos os parâmetros de entrada antes do cálculo
func (in Input) Validate() error {
	if !ValidServiceType(in.ServiceType) {
		return fmt.Errorf("%w: %q", ErrUnknownServiceType, in.ServiceType)
	}
	if err := ValidateCriticality(in.Criticality); err != nil {
		return err
	}
	if err := ValidateSupportWindow(in.SupportWindow); err != nil {
		return err
	}
	if in.DiscountEnabled {
		if err := ValidatePercentage("desconto comercial", in.DiscountPct); err != nil {
			return err
		}
	}
	if in.RetentionEnabled {
		if err := ValidatePercentage("retenção", in.RetentionPct); err != nil {
			return err
		}
	}
	if _, err := ToMonths(in.Duration); err != nil {
		return err
	}
	for _, line := range in.Profiles {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}
	if in.ServiceType == ServiceProject {
		for role, count := range in.Roles {
			if count < 1 {
				return fmt.Errorf("role %q: %w", role, ErrZeroHeadcount)
			}
		}
	}
	return nil
}

// Aggregate executa o pipeline completo de estimativa: resolução de tarifa,
// custo por linha, adicionais de risco/suporte, desconto e retenção, e
// projeção pela duração. É uma função pura e determinística: entradas
// idênticas produzem resultados bit a bit idênticos, requisito para que o
// snapshot persistido seja reproduzível.
func Aggregate(catalog *Catalog, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lines := buildLines(catalog, in)

	var gross float64
	for _, line := range lines {
		gross += line.Cost
	}

	l2, risk := Surcharge(in.Criticality, in.SupportWindow, gross)
	totalWithRisk := gross + l2 + risk

	discountPct := 0.0
	if in.DiscountEnabled {
		discountPct = in.DiscountPct
	}
	retentionPct := 0.0
	if in.RetentionEnabled {
		retentionPct = in.RetentionPct
	}
	discount, retention := Adjust(totalWithRisk, discountPct, retentionPct)

	final := totalWithRisk - discount - retention
	if final < 0 {
		final = 0
	}

	breakdown := Breakdown{
		GrossTotal:      gross,
		L2SupportCost:   l2,
		RiskCost:        risk,
		DiscountAmount:  discount,
		RetentionAmount: retention,
		TotalWithRisk:   totalWithRisk,
		FinalTotal:      final,
	}

	months, err := ToMonths(in.Duration)
	if err != nil {
		return nil, err
	}

	return &Result{
		Lines:          lines,
		Breakdown:      breakdown,
		DurationMonths: months,
		Projected:      ProjectBreakdown(breakdown, months),
	}, nil
}

// buildLines seleciona a fonte de linhas conforme o tipo de cotação e
// resolve a tarifa de cada uma. Uma linha sem tarifa no catálogo recebe a
// tarifa de fallback em vez de abortar a cotação inteira.
func buildLines(catalog *Catalog, in Input) []LineItem {
	switch in.ServiceType {
	case ServiceProject:
		return projectLines(catalog, in.Roles)
	default:
		return staffingLines(catalog, in.Profiles)
	}
}

func staffingLines(catalog *Catalog, profiles []ProfileLine) []LineItem {
	lines := make([]LineItem, 0, len(profiles))
	for _, p := range profiles {
		rate, substituted := resolveRate(catalog, p.Role, p.Seniority)
		allocation := p.AllocationPercentage
		if allocation <= 0 {
			allocation = 100
		}
		lines = append(lines, LineItem{
			Role:                 p.Role,
			Seniority:            p.Seniority,
			Skills:               p.Skills,
			Headcount:            p.Headcount,
			AllocationPercentage: allocation,
			MonthlyRate:          rate.BasePrice * rate.Multiplier,
			Cost:                 LineCost(p, rate),
			RateSubstituted:      substituted,
		})
	}
	return lines
}

// projectLines percorre o mapa de roles em ordem alfabética para que o
// resultado seja determinístico.
func projectLines(catalog *Catalog, roles map[string]int) []LineItem {
	names := make([]string, 0, len(roles))
	for role := range roles {
		names = append(names, role)
	}
	sort.Strings(names)

	lines := make([]LineItem, 0, len(names))
	for _, role := range names {
		count := roles[role]
		if count < 1 {
			continue
		}
		rate, substituted := resolveRate(catalog, role, SenioritySsr)
		line := ProfileLine{Role: role, Seniority: SenioritySsr, Headcount: count, AllocationPercentage: 100}
		lines = append(lines, LineItem{
			Role:                 role,
			Seniority:            SenioritySsr,
			Headcount:            count,
			AllocationPercentage: 100,
			MonthlyRate:          rate.BasePrice * rate.Multiplier,
			Cost:                 LineCost(line, rate),
			RateSubstituted:      substituted,
		})
	}
	return lines
}

// resolveRate tenta o catálogo e cai para a tabela de fallback.
// O retorno substituted=true marca que a tarifa não veio do catálogo.
func resolveRate(catalog *Catalog, role string, seniority Seniority) (RateEntry, bool) {
	if entry, ok := catalog.Resolve(role, seniority); ok {
		return entry, false
	}

	fallback, _ := FallbackRate(role)
	return RateEntry{
		Service:    role,
		Seniority:  seniority,
		Frequency:  FrequencyMonthly,
		BasePrice:  fallback,
		Multiplier: 1.0,
	}, true
}
