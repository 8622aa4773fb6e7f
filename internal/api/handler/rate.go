package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
)

func ListRates(service rating.RateManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rates, err := service.ListRates()
		if err != nil {
			logrus.Error("Error listing rates:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar tarifas no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rates); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// UpdateRates aplica o update parcial de tarifas de um perfil pelo painel
// admin. Níveis ausentes do corpo não são tocados.
func UpdateRates(service rating.RateManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := httprouter.ParamsFromContext(r.Context()).ByName("service")
		if profile == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do perfil é obrigatório", nil)
			return
		}

		var req domain.RateBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := service.UpdateRates(r.Context(), profile, req); err != nil {
			switch {
			case errors.Is(err, rating.ErrInvalidRateValue):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRateValue, err.Error(), nil)

			case errors.Is(err, rating.ErrMissingService):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar tarifas no banco de dados", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}
