package pricing

import "strings"

// DefaultFallbackRate é a tarifa mensal aplicada quando um perfil não tem
// entrada no catálogo nem na tabela de fallback. Uma linha sem tarifa não
// pode bloquear a cotação inteira, mas toda substituição é sinalizada no
// resultado para auditoria.
const DefaultFallbackRate = 4000.00

// Tabela explícita de fallback por slug de perfil. Substitui o antigo match
// por substring, que podia casar o perfil errado.
var fallbackRates = map[string]float64{
	"data_analyst":   2500.00,
	"data_science":   5100.00,
	"bi_developer":   4128.00,
	"data_engineer":  4950.00,
	"power_apps":     4000.00,
	"react_dev":      4500.00,
	"power_automate": 4000.00,
}

// FallbackRate resolve a tarifa de fallback para um perfil sem entrada no
// catálogo. O match é exato sobre o slug normalizado do nome do perfil; o
// segundo retorno indica se houve entrada específica (false significa que a
// tarifa padrão foi usada).
func FallbackRate(role string) (float64, bool) {
	if rate, ok := fallbackRates[roleSlug(role)]; ok {
		return rate, true
	}
	return DefaultFallbackRate, false
}

func roleSlug(role string) string {
	slug := strings.ToLower(strings.TrimSpace(role))
	slug = strings.ReplaceAll(slug, "/", " ")
	slug = strings.Join(strings.Fields(slug), "_")
	return slug
}
