package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/pricing"
	"github.com/storeintelligence/quoting-api/internal/snapshot"
	"github.com/storeintelligence/quoting-api/internal/usecases/quoting"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
	"github.com/storeintelligence/quoting-api/pkg/middleware"
)

// QuoteResponse é a cotação com o snapshot descongelado, como os leitores
// (detalhe e builder) esperam
type QuoteResponse struct {
	*domain.Quote
	Snapshot *snapshot.Snapshot `json:"snapshot"`
}

type DecisionRequest struct {
	Approved bool `json:"approved"`
}

func CreateQuote(service quoting.QuoteManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		view, err := service.CreateQuote(r.Context(), userClaims.UserID, req)
		if err != nil {
			handleQuoteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(QuoteResponse{Quote: view.Quote, Snapshot: view.Snapshot}); err != nil {
			logrus.Error(err)
		}
	})
}

func ListQuotes(service quoting.QuoteManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		quotes, err := service.ListQuotes(r.Context(), userClaims)
		if err != nil {
			logrus.Error("Error listing quotes:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar cotações no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(quotes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetQuote(service quoting.QuoteManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da cotação é obrigatório", nil)
			return
		}

		view, err := service.GetQuote(r.Context(), id, userClaims)
		if err != nil {
			handleQuoteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(QuoteResponse{Quote: view.Quote, Snapshot: view.Snapshot}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func SendQuote(service quoting.QuoteManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.SendQuote(r.Context(), id, userClaims); err != nil {
			handleQuoteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": string(domain.StatusSent),
		})
	})
}

func DecideQuote(service quoting.QuoteManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req DecisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if err := service.DecideQuote(r.Context(), id, req.Approved, userClaims); err != nil {
			handleQuoteError(w, err)
			return
		}

		status := domain.StatusRejected
		if req.Approved {
			status = domain.StatusApproved
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": string(status),
		})
	})
}

// handleQuoteError mapeia os erros do usecase de cotações para a taxonomia da
// API. Erros de validação sempre identificam o campo ofensor na mensagem.
func handleQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quoting.ErrQuoteNotFound):
		apiErrors.WriteError(w, apiErrors.ErrQuoteNotFound, "Cotação não encontrada", nil)

	case errors.Is(err, quoting.ErrAccessDenied):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar esta cotação", nil)

	case errors.Is(err, quoting.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidStatusChange, err.Error(), nil)

	case errors.Is(err, quoting.ErrMissingClientName):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, pricing.ErrZeroHeadcount),
		errors.Is(err, pricing.ErrInvalidAllocation),
		errors.Is(err, pricing.ErrInvalidSeniority),
		errors.Is(err, pricing.ErrInvalidPercentage),
		errors.Is(err, pricing.ErrInvalidMarginFraction),
		errors.Is(err, pricing.ErrUnknownServiceType),
		errors.Is(err, pricing.ErrNonPositiveDuration),
		errors.Is(err, pricing.ErrUnknownDurationUnit),
		errors.Is(err, pricing.ErrUnknownSupportWindow):
		apiErrors.WriteError(w, apiErrors.ErrInvalidQuoteInput, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar cotação", nil)
	}
}
