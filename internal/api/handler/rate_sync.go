package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
)

// RateSyncResponse é a resposta do webhook de tarifas, enumerando os níveis
// efetivamente aplicados na nomenclatura do payload
type RateSyncResponse struct {
	Success       bool     `json:"success"`
	ProfileName   string   `json:"profileName"`
	UpdatedLevels []string `json:"updatedLevels"`
}

// validateSyncKey autentica os webhooks pela chave compartilhada x-api-key.
// Chave não configurada no servidor também rejeita: nunca aceitar vazio.
func validateSyncKey(w http.ResponseWriter, r *http.Request, cfg *config.Config) bool {
	expected := cfg.RateSync.APIKey
	provided := r.Header.Get("x-api-key")

	if expected == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		logrus.Warn("Webhook rejeitado por chave de API ausente ou incorreta")
		apiErrors.WriteError(w, apiErrors.ErrInvalidAPIKey, "Chave de API ausente ou incorreta", nil)
		return false
	}

	return true
}

// SyncRates é o webhook da ferramenta externa de gestão de perfis. Um valor
// inválido em qualquer nível aborta a sincronização inteira.
func SyncRates(service rating.RateManager, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validateSyncKey(w, r, cfg) {
			return
		}

		var req domain.RateSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		applied, err := service.SyncRates(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, rating.ErrUnknownProfile):
				apiErrors.WriteError(w, apiErrors.ErrUnrecognizedProfile, err.Error(), nil)

			case errors.Is(err, rating.ErrInvalidRateValue):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRateValue, err.Error(), nil)

			case errors.Is(err, rating.ErrMissingService):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar tarifas sincronizadas", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RateSyncResponse{
			Success:       true,
			ProfileName:   req.ProfileName,
			UpdatedLevels: applied,
		})
	})
}
