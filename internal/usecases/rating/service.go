package rating

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storeintelligence/quoting-api/infrastructure/repository"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/pricing"
	"github.com/storeintelligence/quoting-api/pkg/log"
)

var (
	// ErrUnknownProfile indica nome de perfil fora da lista oficial
	ErrUnknownProfile = errors.New("perfil não reconhecido")
	// ErrInvalidRateValue indica valor de tarifa não numérico ou negativo
	ErrInvalidRateValue = errors.New("valor de tarifa inválido")
	// ErrMissingService indica requisição sem o nome do serviço
	ErrMissingService = errors.New("nome do serviço é obrigatório")
)

// Nomes dos níveis no payload do webhook, por seniority do catálogo
var payloadLevelNames = map[pricing.Seniority]string{
	pricing.SeniorityJr:     "jr",
	pricing.SenioritySsr:    "med",
	pricing.SenioritySr:     "sr",
	pricing.SeniorityExpert: "expert",
}

type RateManager interface {
	ListRates() ([]pricing.RateEntry, error)
	LoadCatalog() (*pricing.Catalog, error)
	UpdateRates(ctx context.Context, service string, req domain.RateBatchRequest) error
	SyncRates(ctx context.Context, req domain.RateSyncRequest) ([]string, error)
}

type Service struct {
	rateRepo repository.RateRepository
}

func NewService(rateRepo repository.RateRepository) RateManager {
	return &Service{
		rateRepo: rateRepo,
	}
}

func (s *Service) ListRates() ([]pricing.RateEntry, error) {
	return s.rateRepo.ListRates()
}

// LoadCatalog monta o catálogo em memória usado pelo cálculo de cotações
func (s *Service) LoadCatalog() (*pricing.Catalog, error) {
	rates, err := s.rateRepo.ListRates()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar tarifas do banco")
	}

	return pricing.NewCatalog(rates), nil
}

// UpdateRates aplica o update parcial do painel admin: somente os níveis
// presentes no mapa são gravados, os demais permanecem intactos.
func (s *Service) UpdateRates(ctx context.Context, service string, req domain.RateBatchRequest) error {
	if service == "" {
		return ErrMissingService
	}

	if len(req.Prices) == 0 {
		return nil
	}

	for seniority, price := range req.Prices {
		if !pricing.ValidSeniority(seniority) {
			return errors.Wrapf(ErrInvalidRateValue, "nível %q não reconhecido", seniority)
		}
		if price < 0 {
			return errors.Wrapf(ErrInvalidRateValue, "nível %q com valor negativo", seniority)
		}
	}

	if err := s.rateRepo.UpsertLevels(ctx, service, req.Prices); err != nil {
		return errors.Wrapf(err, "erro ao gravar tarifas do serviço %q", service)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"profile": service,
	}).Infof("Tarifas atualizadas para %d níveis", len(req.Prices))

	return nil
}

// SyncRates processa o webhook da ferramenta externa de gestão de perfis.
// Todos os níveis presentes são convertidos antes de qualquer gravação:
// um valor inválido aborta a sincronização inteira, identificando o nível.
// Retorna os nomes dos níveis aplicados, na nomenclatura do payload.
func (s *Service) SyncRates(ctx context.Context, req domain.RateSyncRequest) ([]string, error) {
	if req.ProfileName == "" {
		return nil, ErrMissingService
	}

	if !domain.IsOfficialProfile(req.ProfileName) {
		return nil, errors.Wrapf(ErrUnknownProfile, "%q", req.ProfileName)
	}

	levels := req.Levels()
	if len(levels) == 0 {
		return []string{}, nil
	}

	// Primeira passada: converter tudo, sem tocar no banco
	prices := make(map[pricing.Seniority]float64, len(levels))
	applied := make([]string, 0, len(levels))
	for _, level := range levels {
		value, err := level.Raw.Float64()
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidRateValue, "nível %q com valor %q", payloadLevelNames[level.Seniority], level.Raw.String())
		}
		if value < 0 {
			return nil, errors.Wrapf(ErrInvalidRateValue, "nível %q com valor negativo", payloadLevelNames[level.Seniority])
		}

		prices[level.Seniority] = value
		applied = append(applied, payloadLevelNames[level.Seniority])
	}

	if err := s.rateRepo.UpsertLevels(ctx, req.ProfileName, prices); err != nil {
		return nil, errors.Wrapf(err, "erro ao sincronizar tarifas do perfil %q", req.ProfileName)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"profile": req.ProfileName,
	}).Infof("Sync de tarifas aplicou os níveis %v", applied)

	return applied, nil
}
