package domain

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/storeintelligence/quoting-api/internal/pricing"
)

// OfficialProfiles é a lista fechada dos onze perfis oficiais aceitos pelo
// sync de tarifas. Nomes fora da lista são rejeitados com erro explícito.
var OfficialProfiles = []string{
	"BI Visualization Developer",
	"Azure Developer",
	"Solution Architect",
	"BI Data Architect",
	"Data Engineer",
	"Data Scientist",
	"Data / Operations Analyst",
	"Project / Product Manager",
	"Business Analyst",
	"Low Code Developer",
	"Power App / Streamlit Developer",
}

// IsOfficialProfile verifica o nome contra a lista oficial (match exato)
func IsOfficialProfile(name string) bool {
	for _, p := range OfficialProfiles {
		if p == name {
			return true
		}
	}
	return false
}

// RateSyncRequest é o corpo do webhook de sincronização de tarifas.
// Somente os níveis presentes e não vazios são aplicados.
type RateSyncRequest struct {
	ProfileName string          `json:"profileName"`
	Jr          *FlexibleNumber `json:"jr,omitempty"`
	Med         *FlexibleNumber `json:"med,omitempty"`
	Sr          *FlexibleNumber `json:"sr,omitempty"`
	Expert      *FlexibleNumber `json:"expert,omitempty"`
}

// RateSyncLevel é um nível de seniority presente na requisição de sync
type RateSyncLevel struct {
	Seniority pricing.Seniority
	Raw       *FlexibleNumber
}

// Levels devolve os pares (nível, valor bruto) presentes na requisição, na
// ordem canônica Jr/Ssr/Sr/Expert. O nível "med" do payload corresponde ao
// Ssr do catálogo.
func (r RateSyncRequest) Levels() []RateSyncLevel {
	levels := make([]RateSyncLevel, 0, 4)
	appendLevel := func(s pricing.Seniority, n *FlexibleNumber) {
		if n != nil && !n.IsEmpty() {
			levels = append(levels, RateSyncLevel{Seniority: s, Raw: n})
		}
	}
	appendLevel(pricing.SeniorityJr, r.Jr)
	appendLevel(pricing.SenioritySsr, r.Med)
	appendLevel(pricing.SenioritySr, r.Sr)
	appendLevel(pricing.SeniorityExpert, r.Expert)
	return levels
}

// RateBatchRequest é o corpo do update parcial de tarifas do painel admin.
// Níveis ausentes do mapa não são tocados.
type RateBatchRequest struct {
	Prices map[pricing.Seniority]float64 `json:"prices"`
}

// FlexibleNumber aceita valores JSON numéricos ou string ("4500.50"),
// preservando o texto original para mensagens de erro.
type FlexibleNumber struct {
	raw string
}

// NewFlexibleNumber cria um FlexibleNumber a partir do texto informado
func NewFlexibleNumber(raw string) *FlexibleNumber {
	return &FlexibleNumber{raw: raw}
}

// UnmarshalJSON implementa json.Unmarshaler
func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		n.raw = ""
		return nil
	}

	text := string(trimmed)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	n.raw = strings.TrimSpace(text)
	return nil
}

// MarshalJSON implementa json.Marshaler
func (n FlexibleNumber) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(n.raw, 64); err == nil {
		return []byte(n.raw), nil
	}
	return []byte(strconv.Quote(n.raw)), nil
}

// IsEmpty indica se nenhum valor foi informado
func (n *FlexibleNumber) IsEmpty() bool {
	return n == nil || n.raw == ""
}

// Float64 converte o valor para float; erro identifica conteúdo não numérico
func (n *FlexibleNumber) Float64() (float64, error) {
	return strconv.ParseFloat(n.raw, 64)
}

// String devolve o texto original, para mensagens de erro
func (n *FlexibleNumber) String() string {
	if n == nil {
		return ""
	}
	return n.raw
}
