package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/export"
	"github.com/storeintelligence/quoting-api/internal/scheduler"
	"github.com/storeintelligence/quoting-api/internal/usecases/quoting"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
	"github.com/storeintelligence/quoting-api/pkg/middleware"
)

// resolveExportOptions monta as opções de renderização a partir da query.
// A conversão de moeda é apenas de exibição: o snapshot nunca é alterado.
func resolveExportOptions(r *http.Request, rates scheduler.ExchangeRateProvider, cfg *config.Config) (export.Options, error) {
	opts := export.Options{
		CompanyName:  cfg.Export.CompanyName,
		Currency:     cfg.Export.BaseCurrency,
		ExchangeRate: 1.0,
	}

	currency := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	if currency == "" || currency == cfg.Export.BaseCurrency {
		return opts, nil
	}

	rate, ok := rates.Rate(currency)
	if !ok {
		return opts, fmt.Errorf("moeda %q sem taxa de câmbio disponível", currency)
	}

	opts.Currency = currency
	opts.ExchangeRate = rate
	return opts, nil
}

func exportQuoteDocument(
	service quoting.QuoteManager,
	rates scheduler.ExchangeRateProvider,
	cfg *config.Config,
	contentType string,
	extension string,
	generate func(export.RenderInput) ([]byte, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		view, err := service.GetQuote(r.Context(), id, userClaims)
		if err != nil {
			handleQuoteError(w, err)
			return
		}

		opts, err := resolveExportOptions(r, rates, cfg)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		in := export.BuildRenderInput(view.Quote, view.Snapshot, opts)

		data, err := generate(in)
		if err != nil {
			logrus.WithError(err).Errorf("Erro ao gerar documento %s da cotação %s", extension, id)
			apiErrors.WriteError(w, apiErrors.ErrExportFailure, "Erro ao gerar documento de exportação", nil)
			return
		}

		filename := fmt.Sprintf("cotizacion-%s.%s", view.Quote.Reference, extension)
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(data); err != nil {
			logrus.WithError(err).Warn("Erro ao enviar documento exportado")
		}
	})
}

func ExportQuotePDF(service quoting.QuoteManager, rates scheduler.ExchangeRateProvider, cfg *config.Config) http.Handler {
	return exportQuoteDocument(service, rates, cfg, "application/pdf", "pdf", export.GeneratePDF)
}

func ExportQuoteWord(service quoting.QuoteManager, rates scheduler.ExchangeRateProvider, cfg *config.Config) http.Handler {
	return exportQuoteDocument(
		service,
		rates,
		cfg,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"docx",
		export.GenerateWord,
	)
}

func exportQuoteList(
	service quoting.QuoteManager,
	contentType string,
	filename string,
	generate func([]*domain.Quote) ([]byte, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		quotes, err := service.ListQuotes(r.Context(), userClaims)
		if err != nil {
			logrus.Error("Error listing quotes for export:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar cotações no banco de dados", nil)
			return
		}

		data, err := generate(quotes)
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar listagem de cotações")
			apiErrors.WriteError(w, apiErrors.ErrExportFailure, "Erro ao gerar documento de exportação", nil)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(data); err != nil {
			logrus.WithError(err).Warn("Erro ao enviar documento exportado")
		}
	})
}

func ExportQuoteListExcel(service quoting.QuoteManager) http.Handler {
	return exportQuoteList(
		service,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"cotizaciones.xlsx",
		export.GenerateExcel,
	)
}

func ExportQuoteListCSV(service quoting.QuoteManager) http.Handler {
	return exportQuoteList(service, "text/csv", "cotizaciones.csv", export.GenerateCSV)
}
