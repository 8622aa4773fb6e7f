package pricing

// Seniority representa o nível de experiência de um perfil
type Seniority string

const (
	SeniorityJr     Seniority = "Jr"
	SenioritySsr    Seniority = "Ssr"
	SenioritySr     Seniority = "Sr"
	SeniorityExpert Seniority = "Expert"
)

// FrequencyMonthly é a única frequência de cobrança suportada pelo catálogo
const FrequencyMonthly = "Mensual"

// RateEntry representa uma tarifa do catálogo para um par (serviço, seniority)
type RateEntry struct {
	Service    string    `json:"service"`
	Seniority  Seniority `json:"seniority"`
	Frequency  string    `json:"frequency"`
	BasePrice  float64   `json:"base_price"`
	Multiplier float64   `json:"multiplier"`
}

// ValidSeniority verifica se o valor informado é um nível oficial
func ValidSeniority(s Seniority) bool {
	switch s {
	case SeniorityJr, SenioritySsr, SenioritySr, SeniorityExpert:
		return true
	}
	return false
}

type catalogKey struct {
	service   string
	seniority Seniority
}

// Catalog resolve tarifas por (serviço, seniority) com match exato.
// A ausência de uma entrada é um estado esperado: nem todo perfil existe
// em todos os níveis, e cabe ao chamador decidir o fallback.
type Catalog struct {
	entries map[catalogKey]RateEntry
}

// NewCatalog monta o catálogo a partir das tarifas persistidas.
// Apenas entradas com frequência mensal são indexadas.
func NewCatalog(entries []RateEntry) *Catalog {
	c := &Catalog{entries: make(map[catalogKey]RateEntry, len(entries))}
	for _, e := range entries {
		if e.Frequency != FrequencyMonthly {
			continue
		}
		c.entries[catalogKey{service: e.Service, seniority: e.Seniority}] = e
	}
	return c
}

// Resolve busca a tarifa exata para (serviço, seniority, mensal).
// O segundo retorno indica se a entrada existe no catálogo.
func (c *Catalog) Resolve(service string, seniority Seniority) (RateEntry, bool) {
	entry, ok := c.entries[catalogKey{service: service, seniority: seniority}]
	return entry, ok
}

// Len retorna a quantidade de tarifas indexadas
func (c *Catalog) Len() int {
	return len(c.entries)
}
