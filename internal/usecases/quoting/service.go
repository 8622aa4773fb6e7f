package quoting

import (
	"context"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/storeintelligence/quoting-api/infrastructure/repository"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/pricing"
	"github.com/storeintelligence/quoting-api/internal/snapshot"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/storeintelligence/quoting-api/pkg/log"
)

var (
	// ErrQuoteNotFound indica cotação inexistente
	ErrQuoteNotFound = errors.New("cotação não encontrada")
	// ErrAccessDenied indica que o usuário não pode ver ou alterar a cotação
	ErrAccessDenied = errors.New("acesso negado à cotação")
	// ErrInvalidTransition indica transição de status não permitida
	ErrInvalidTransition = errors.New("transição de status não permitida")
	// ErrInvalidStatus indica valor de status não reconhecido
	ErrInvalidStatus = errors.New("status não reconhecido")
	// ErrMissingClientName indica criação sem nome de cliente
	ErrMissingClientName = errors.New("nome do cliente é obrigatório")
	// ErrMissingQuoteID indica sync sem o ID da cotação
	ErrMissingQuoteID = errors.New("id da cotação é obrigatório")
)

const (
	referenceLength   = 6
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// QuoteView é a cotação acompanhada do snapshot congelado, pronta para os
// leitores (detalhe, exportação)
type QuoteView struct {
	Quote    *domain.Quote
	Snapshot *snapshot.Snapshot
}

// SyncResult é o resultado do webhook de status: quais campos foram gravados
type SyncResult struct {
	QuoteID string
	Fields  []string
	Updated bool
}

type QuoteManager interface {
	CreateQuote(ctx context.Context, ownerID int, req domain.QuoteRequest) (*QuoteView, error)
	GetQuote(ctx context.Context, id string, viewer *domain.Claims) (*QuoteView, error)
	ListQuotes(ctx context.Context, viewer *domain.Claims) ([]*domain.Quote, error)
	SendQuote(ctx context.Context, id string, viewer *domain.Claims) error
	DecideQuote(ctx context.Context, id string, approved bool, viewer *domain.Claims) error
	SyncStatus(ctx context.Context, req domain.QuoteSyncRequest) (*SyncResult, error)
}

type Service struct {
	quoteRepo repository.QuoteRepository
	rates     rating.RateManager
}

func NewService(quoteRepo repository.QuoteRepository, rates rating.RateManager) QuoteManager {
	return &Service{
		quoteRepo: quoteRepo,
		rates:     rates,
	}
}

// CreateQuote calcula a estimativa com o catálogo vigente, congela o snapshot
// e persiste a cotação em BORRADOR. O custo estimado espelha o finalTotal do
// snapshot para listagens sem parse do blob.
func (s *Service) CreateQuote(ctx context.Context, ownerID int, req domain.QuoteRequest) (*QuoteView, error) {
	if req.ClientName == "" {
		return nil, ErrMissingClientName
	}

	catalog, err := s.rates.LoadCatalog()
	if err != nil {
		return nil, err
	}

	result, err := pricing.Aggregate(catalog, req.Parameters)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx)
	for _, line := range result.Lines {
		if line.RateSubstituted {
			logger.WithFields(log.Fields{
				"profile":   line.Role,
				"seniority": string(line.Seniority),
			}).Warnf("Tarifa não encontrada no catálogo, usando valor de contingência para %q", line.Role)
		}
	}

	snap := snapshot.Build(req.Parameters, result)
	blob, err := snapshot.Freeze(snap)
	if err != nil {
		return nil, err
	}

	reference, err := gonanoid.Generate(referenceAlphabet, referenceLength)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar referência da cotação")
	}

	quote := &domain.Quote{
		ID:                  uuid.New().String(),
		Reference:           reference,
		ClientName:          req.ClientName,
		Description:         req.Description,
		ServiceType:         string(req.Parameters.ServiceType),
		Status:              domain.StatusDraft,
		EstimatedCost:       result.Breakdown.FinalTotal,
		TechnicalParameters: blob,
		OwnerID:             ownerID,
	}

	quote, err = s.quoteRepo.CreateQuote(quote)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao persistir cotação")
	}

	logger.WithFields(log.Fields{
		"quote_id": quote.ID,
	}).Infof("Cotação %s criada para o cliente %s", quote.Reference, quote.ClientName)

	return &QuoteView{Quote: quote, Snapshot: snap}, nil
}

// GetQuote retorna a cotação com o snapshot descongelado. Todos os totais
// exibidos saem do snapshot, nunca de um recálculo com o catálogo atual.
func (s *Service) GetQuote(ctx context.Context, id string, viewer *domain.Claims) (*QuoteView, error) {
	quote, err := s.quoteRepo.GetQuoteByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}

	if !canView(viewer, quote) {
		return nil, ErrAccessDenied
	}

	snap, err := snapshot.Thaw(quote.TechnicalParameters)
	if err != nil {
		// Blob corrompido não derruba a leitura: degrada como cotação legada
		log.ForContext(ctx).WithError(err).Warnf("Snapshot ilegível na cotação %s, exibindo como legada", quote.ID)
		snap = &snapshot.Snapshot{}
	}

	return &QuoteView{Quote: quote, Snapshot: snap}, nil
}

// ListQuotes retorna as cotações visíveis pelo usuário: clientes veem apenas
// as próprias, admin e consultores veem todas.
func (s *Service) ListQuotes(ctx context.Context, viewer *domain.Claims) ([]*domain.Quote, error) {
	var ownerID *int
	if viewer.UserRoleID == domain.RoleCliente {
		ownerID = &viewer.UserID
	}

	return s.quoteRepo.ListQuotes(ownerID)
}

// SendQuote move a cotação de BORRADOR para ENVIADA. Apenas o dono (ou admin)
// pode enviar.
func (s *Service) SendQuote(ctx context.Context, id string, viewer *domain.Claims) error {
	quote, err := s.quoteRepo.GetQuoteByID(id)
	if err != nil {
		return err
	}
	if quote == nil {
		return ErrQuoteNotFound
	}

	if viewer.UserRoleID != domain.RoleAdmin && quote.OwnerID != viewer.UserID {
		return ErrAccessDenied
	}

	if quote.Status != domain.StatusDraft {
		return errors.Wrapf(ErrInvalidTransition, "de %s para %s", quote.Status, domain.StatusSent)
	}

	if err := s.quoteRepo.UpdateStatus(id, domain.StatusSent); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"quote_id": id,
	}).Info("Cotação enviada ao cliente")

	return nil
}

// DecideQuote registra a decisão sobre uma cotação ENVIADA. Somente admin.
func (s *Service) DecideQuote(ctx context.Context, id string, approved bool, viewer *domain.Claims) error {
	if viewer.UserRoleID != domain.RoleAdmin {
		return ErrAccessDenied
	}

	quote, err := s.quoteRepo.GetQuoteByID(id)
	if err != nil {
		return err
	}
	if quote == nil {
		return ErrQuoteNotFound
	}

	target := domain.StatusRejected
	if approved {
		target = domain.StatusApproved
	}

	if quote.Status != domain.StatusSent {
		return errors.Wrapf(ErrInvalidTransition, "de %s para %s", quote.Status, target)
	}

	if err := s.quoteRepo.UpdateStatus(id, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"quote_id": id,
	}).Infof("Cotação decidida: %s", target)

	return nil
}

// SyncStatus processa o webhook da ferramenta de board. Status inválido é
// rejeitado identificando o valor; budget não numérico apenas pula o campo;
// cotação inexistente distingue-se de payload malformado.
func (s *Service) SyncStatus(ctx context.Context, req domain.QuoteSyncRequest) (*SyncResult, error) {
	if req.ID == "" {
		return nil, ErrMissingQuoteID
	}

	update := domain.QuoteUpdate{ID: req.ID}
	logger := log.ForContext(ctx).WithField("quote_id", req.ID)

	// Formato legado {id, status} e formato atual {id, updates:{...}}
	statusValue := req.Status
	if req.Updates != nil && req.Updates.Status != nil {
		statusValue = *req.Updates.Status
	}

	if statusValue != "" {
		status := domain.QuoteStatus(statusValue)
		if !domain.ValidQuoteStatus(status) {
			return nil, errors.Wrapf(ErrInvalidStatus, "%q", statusValue)
		}
		update.Status = &status
	}

	if req.Updates != nil {
		if !req.Updates.Budget.IsEmpty() {
			cost, err := req.Updates.Budget.Float64()
			if err != nil {
				logger.Warnf("Budget não numérico %q ignorado no sync", req.Updates.Budget.String())
			} else {
				update.EstimatedCost = &cost
			}
		}

		if req.Updates.ServiceType != nil && *req.Updates.ServiceType != "" {
			update.ServiceType = req.Updates.ServiceType
		}
	}

	fields := update.Fields()
	if len(fields) == 0 {
		logger.Info("Sync de status sem campos válidos para atualizar")
		return &SyncResult{QuoteID: req.ID, Fields: []string{}, Updated: false}, nil
	}

	if err := s.quoteRepo.ApplyUpdate(update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, errors.Wrap(err, "erro ao aplicar sync de status")
	}

	logger.Infof("Sync de status aplicou os campos %v", fields)

	return &SyncResult{QuoteID: req.ID, Fields: fields, Updated: true}, nil
}

func canView(viewer *domain.Claims, quote *domain.Quote) bool {
	if viewer.UserRoleID == domain.RoleAdmin || viewer.UserRoleID == domain.RoleConsultor {
		return true
	}
	return quote.OwnerID == viewer.UserID
}
