package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExchangeRateSource é a resposta da API pública de taxas de câmbio
type ExchangeRateSource struct {
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// ExchangeRateProvider expõe as taxas vigentes para os documentos exportados
type ExchangeRateProvider interface {
	Rate(currency string) (float64, bool)
}

// ExchangeRateSyncService atualiza periodicamente a tabela de câmbio usada
// apenas na exibição dos documentos. O cálculo de cotações nunca depende
// dessas taxas.
type ExchangeRateSyncService struct {
	scheduler *gocron.Scheduler
	config    config.ExchangeRateSync

	mu    sync.RWMutex
	rates map[string]float64

	lastSyncAt time.Time
}

// NewExchangeRateSyncService cria o serviço de sincronização de câmbio
func NewExchangeRateSyncService(appConfig *config.Config) *ExchangeRateSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.ExchangeRateSync.CronSchedule,
		"source_url":    appConfig.ExchangeRateSync.SourceURL,
		"sync_enabled":  appConfig.ExchangeRateSync.Enabled,
	}).Info("Configuração do agendador de taxas de câmbio carregada")

	return &ExchangeRateSyncService{
		scheduler: scheduler,
		config:    appConfig.ExchangeRateSync,
		rates:     make(map[string]float64),
	}
}

// Start inicia o agendador e faz uma carga imediata da tabela
func (s *ExchangeRateSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização de taxas de câmbio desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de taxas de câmbio")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncRates()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de taxas de câmbio: %w", err)
	}

	s.scheduler.StartAsync()

	// Carga inicial para não esperar o primeiro cron
	go s.syncRates()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de taxas de câmbio")
		s.scheduler.Stop()
	}()

	return nil
}

// Rate retorna a taxa vigente para a moeda, se conhecida
func (s *ExchangeRateSyncService) Rate(currency string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate, ok := s.rates[currency]
	return rate, ok
}

func (s *ExchangeRateSyncService) syncRates() {
	startTime := time.Now()

	body, err := utils.MakeRequest(s.config.SourceURL)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar a fonte de taxas de câmbio")
		return
	}

	var source ExchangeRateSource
	if err := json.Unmarshal(body, &source); err != nil {
		logrus.WithError(err).Error("Erro ao interpretar a resposta da fonte de taxas de câmbio")
		return
	}

	if len(source.Rates) == 0 {
		logrus.Warn("Fonte de taxas de câmbio retornou tabela vazia, mantendo a anterior")
		return
	}

	s.mu.Lock()
	s.rates = source.Rates
	s.lastSyncAt = time.Now()
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"base_code":   source.BaseCode,
		"currencies":  len(source.Rates),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Tabela de taxas de câmbio atualizada")
}
