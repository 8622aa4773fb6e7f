package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/usecases/quoting"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
)

// StatusSyncResponse é a resposta do webhook de status, enumerando os campos
// efetivamente gravados
type StatusSyncResponse struct {
	Success       bool     `json:"success"`
	ID            string   `json:"id"`
	UpdatedFields []string `json:"updatedFields"`
	Updated       bool     `json:"updated"`
}

// SyncStatus é o webhook da ferramenta de board. Cotação inexistente responde
// 404; payload malformado responde 400; budget não numérico apenas pula o
// campo, sem falhar a requisição.
func SyncStatus(service quoting.QuoteManager, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validateSyncKey(w, r, cfg) {
			return
		}

		var req domain.QuoteSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		result, err := service.SyncStatus(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, quoting.ErrQuoteNotFound):
				apiErrors.WriteError(w, apiErrors.ErrQuoteNotFound, "Cotação não encontrada", map[string]any{
					"id": req.ID,
				})

			case errors.Is(err, quoting.ErrMissingQuoteID):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

			case errors.Is(err, quoting.ErrInvalidStatus):
				apiErrors.WriteError(w, apiErrors.ErrInvalidStatusChange, err.Error(), nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao aplicar sync de status", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(StatusSyncResponse{
			Success:       true,
			ID:            result.QuoteID,
			UpdatedFields: result.Fields,
			Updated:       result.Updated,
		})
	})
}
