// Package snapshot congela os parâmetros e o desglose financeiro de uma
// cotação no JSON persistido em technicalParameters. Depois de gerado, o
// snapshot é o registro financeiro da cotação: exportações e resumos apenas
// releem os valores, nunca recalculam.
package snapshot

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/storeintelligence/quoting-api/internal/pricing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CurrentVersion identifica o esquema atual do snapshot. Cotações antigas
// (anteriores ao desglose) não têm o campo version e degradam para a
// versão 0, sem breakdown disponível.
const CurrentVersion = 1

// ProfileSnapshot é a linha de perfil como persistida no snapshot
type ProfileSnapshot struct {
	Role      string  `json:"role"`
	Seniority string  `json:"seniority"`
	Skills    string  `json:"skills,omitempty"`
	Count     int     `json:"count"`
	Price     float64 `json:"price"`
}

// StaffingDetails agrupa os perfis de cotações Staffing/Sustain
type StaffingDetails struct {
	Profiles []ProfileSnapshot `json:"profiles"`
}

// Snapshot é a forma persistida de uma cotação: entradas + desglose.
// Os totais ficam no nível raiz porque os leitores (resumo admin,
// exportadores) os consomem diretamente.
type Snapshot struct {
	Version         int                `json:"version"`
	ServiceType     string             `json:"serviceType"`
	GrossTotal      float64            `json:"grossTotal"`
	L2SupportCost   float64            `json:"l2SupportCost"`
	RiskCost        float64            `json:"riskCost"`
	DiscountAmount  float64            `json:"discountAmount"`
	RetentionAmount float64            `json:"retentionAmount"`
	TotalWithRisk   float64            `json:"totalWithRisk"`
	FinalTotal      float64            `json:"finalTotal"`
	DurationMonths  float64            `json:"durationMonths"`
	Projected       pricing.Breakdown  `json:"projected"`
	StaffingDetails *StaffingDetails   `json:"staffingDetails,omitempty"`
	Lines           []pricing.LineItem `json:"lines,omitempty"`
	Inputs          pricing.Input      `json:"inputs"`
}

// Build monta o snapshot a partir das entradas e do resultado do agregador
func Build(in pricing.Input, result *pricing.Result) *Snapshot {
	snap := &Snapshot{
		Version:         CurrentVersion,
		ServiceType:     string(in.ServiceType),
		GrossTotal:      result.Breakdown.GrossTotal,
		L2SupportCost:   result.Breakdown.L2SupportCost,
		RiskCost:        result.Breakdown.RiskCost,
		DiscountAmount:  result.Breakdown.DiscountAmount,
		RetentionAmount: result.Breakdown.RetentionAmount,
		TotalWithRisk:   result.Breakdown.TotalWithRisk,
		FinalTotal:      result.Breakdown.FinalTotal,
		DurationMonths:  result.DurationMonths,
		Projected:       result.Projected,
		Lines:           result.Lines,
		Inputs:          in,
	}

	if in.ServiceType == pricing.ServiceStaffing || in.ServiceType == pricing.ServiceSustain {
		details := &StaffingDetails{Profiles: make([]ProfileSnapshot, 0, len(result.Lines))}
		for _, line := range result.Lines {
			details.Profiles = append(details.Profiles, ProfileSnapshot{
				Role:      line.Role,
				Seniority: string(line.Seniority),
				Skills:    line.Skills,
				Count:     line.Headcount,
				Price:     line.Cost,
			})
		}
		snap.StaffingDetails = details
	}

	return snap
}

// Freeze serializa o snapshot para persistência. O blob resultante é
// gravado uma única vez e nunca reescrito.
func Freeze(snap *Snapshot) ([]byte, error) {
	blob, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar snapshot da cotação")
	}
	return blob, nil
}

// Thaw decodifica um snapshot persistido. Blobs de cotações legacy (sem o
// campo version) voltam com Version 0 e HasBreakdown() false; o chamador
// deve degradar a exibição em vez de falhar.
func Thaw(blob []byte) (*Snapshot, error) {
	if len(blob) == 0 {
		return &Snapshot{}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("snapshot ilegível: %w", err)
	}
	return &snap, nil
}

// HasBreakdown informa se o snapshot carrega o desglose financeiro
func (s *Snapshot) HasBreakdown() bool {
	return s != nil && s.Version >= CurrentVersion
}

// Breakdown remonta o desglose mensal a partir dos campos persistidos
func (s *Snapshot) Breakdown() pricing.Breakdown {
	return pricing.Breakdown{
		GrossTotal:      s.GrossTotal,
		L2SupportCost:   s.L2SupportCost,
		RiskCost:        s.RiskCost,
		DiscountAmount:  s.DiscountAmount,
		RetentionAmount: s.RetentionAmount,
		TotalWithRisk:   s.TotalWithRisk,
		FinalTotal:      s.FinalTotal,
	}
}
