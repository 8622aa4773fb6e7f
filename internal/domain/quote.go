package domain

import (
	"time"

	"github.com/storeintelligence/quoting-api/internal/pricing"
)

// QuoteStatus é o estado de ciclo de vida de uma cotação
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "BORRADOR"
	StatusSent     QuoteStatus = "ENVIADA"
	StatusApproved QuoteStatus = "APROBADA"
	StatusRejected QuoteStatus = "RECHAZADA"
)

// ValidQuoteStatus verifica se o status é um dos reconhecidos
func ValidQuoteStatus(s QuoteStatus) bool {
	switch s {
	case StatusDraft, StatusSent, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Quote é a cotação persistida. TechnicalParameters guarda o snapshot JSON
// congelado na criação; EstimatedCost espelha o finalTotal do snapshot para
// listagens sem parse do blob.
type Quote struct {
	ID                  string      `json:"id"`
	Reference           string      `json:"reference"`
	ClientName          string      `json:"client_name"`
	Description         string      `json:"description,omitempty"`
	ServiceType         string      `json:"service_type"`
	Status              QuoteStatus `json:"status"`
	EstimatedCost       float64     `json:"estimated_cost"`
	TechnicalParameters []byte      `json:"-"`
	OwnerID             int         `json:"owner_id"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// QuoteRequest é o corpo de criação de cotação enviado pelo builder
type QuoteRequest struct {
	ClientName  string        `json:"client_name"`
	Description string        `json:"description"`
	Parameters  pricing.Input `json:"parameters"`
}

// QuoteSyncRequest é o payload do webhook da ferramenta de board.
// O formato atual envia {id, updates:{...}}; o legado envia {id, status}.
type QuoteSyncRequest struct {
	ID      string            `json:"id"`
	Status  string            `json:"status,omitempty"`
	Updates *QuoteSyncUpdates `json:"updates,omitempty"`
}

// QuoteSyncUpdates são os campos reconhecidos do sync externo. Budget chega
// como número ou string (a ferramenta costuma mandar strings) e é coagido
// para o campo de custo estimado; valor não numérico apenas pula o campo.
type QuoteSyncUpdates struct {
	Status      *string         `json:"status,omitempty"`
	Budget      *FlexibleNumber `json:"budget,omitempty"`
	ServiceType *string         `json:"serviceType,omitempty"`
}

// QuoteUpdate é o conjunto de colunas alteráveis pelo sync externo; apenas
// campos não-nulos são gravados.
type QuoteUpdate struct {
	ID            string
	Status        *QuoteStatus
	EstimatedCost *float64
	ServiceType   *string
}

// Fields lista os nomes dos campos presentes, para a resposta do webhook
func (u QuoteUpdate) Fields() []string {
	fields := make([]string, 0, 3)
	if u.Status != nil {
		fields = append(fields, "status")
	}
	if u.EstimatedCost != nil {
		fields = append(fields, "estimatedCost")
	}
	if u.ServiceType != nil {
		fields = append(fields, "serviceType")
	}
	return fields
}
