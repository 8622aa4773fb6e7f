package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/storeintelligence/quoting-api/internal/api/handler/router"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/internal/scheduler"
	"github.com/storeintelligence/quoting-api/internal/usecases/authenticating"
	"github.com/storeintelligence/quoting-api/internal/usecases/quoting"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/storeintelligence/quoting-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Quotes(service quoting.QuoteManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/quotes",
			Method:      http.MethodPost,
			Handler:     CreateQuote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quotes",
			Method:      http.MethodGet,
			Handler:     ListQuotes(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quotes/:id",
			Method:      http.MethodGet,
			Handler:     GetQuote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quotes/:id/send",
			Method:      http.MethodPost,
			Handler:     SendQuote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quotes/:id/decision",
			Method:      http.MethodPost,
			Handler:     DecideQuote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Rates(service rating.RateManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rates",
			Method:      http.MethodGet,
			Handler:     ListRates(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrConsultor()},
		},
		{
			Path:        "/v1/rates/:service",
			Method:      http.MethodPut,
			Handler:     UpdateRates(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

// Sync retorna as rotas dos webhooks externos. Elas não usam Bearer token:
// a autenticação é a chave compartilhada x-api-key validada no handler.
func Sync(rateService rating.RateManager, quoteService quoting.QuoteManager, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/rates",
			Method:  http.MethodPost,
			Handler: SyncRates(rateService, cfg),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodPost,
			Handler: SyncStatus(quoteService, cfg),
		},
	}
}

func Exports(service quoting.QuoteManager, rates scheduler.ExchangeRateProvider, cfg *config.Config) []router.Route {
	return []router.Route{
		// Rota separada de /v1/quotes/:id para não conflitar no httprouter
		{
			Path:        "/v1/export/quotes/xlsx",
			Method:      http.MethodGet,
			Handler:     ExportQuoteListExcel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/export/quotes/csv",
			Method:      http.MethodGet,
			Handler:     ExportQuoteListCSV(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/quotes/:id/export/pdf",
			Method:      http.MethodGet,
			Handler:     ExportQuotePDF(service, rates, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quotes/:id/export/word",
			Method:      http.MethodGet,
			Handler:     ExportQuoteWord(service, rates, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
