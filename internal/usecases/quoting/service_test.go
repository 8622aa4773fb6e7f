package quoting

import (
	"context"
	"testing"

	"github.com/storeintelligence/quoting-api/infrastructure/repository"
	"github.com/storeintelligence/quoting-api/infrastructure/repository/mocks"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/pricing"
	"github.com/storeintelligence/quoting-api/internal/snapshot"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func adminClaims() *domain.Claims {
	return &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}
}

func clientClaims(userID int) *domain.Claims {
	return &domain.Claims{UserID: userID, UserRoleID: domain.RoleCliente}
}

func catalogRates() []pricing.RateEntry {
	return []pricing.RateEntry{
		{Service: "Data Engineer", Seniority: pricing.SenioritySr, Frequency: pricing.FrequencyMonthly, BasePrice: 7077.78, Multiplier: 1.0},
	}
}

func staffingRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		ClientName: "Nestlé",
		Parameters: pricing.Input{
			ServiceType: pricing.ServiceStaffing,
			Profiles: []pricing.ProfileLine{
				{Role: "Data Engineer", Seniority: pricing.SenioritySr, Headcount: 1, AllocationPercentage: 100},
			},
			Duration: pricing.DurationSpec{Value: 3, Unit: pricing.UnitMonths},
		},
	}
}

func TestCreateQuote_FreezesSnapshotAndMirrorsCost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockRateRepo.EXPECT().ListRates().Return(catalogRates(), nil)

	var persisted *domain.Quote
	mockQuoteRepo.EXPECT().
		CreateQuote(gomock.Any()).
		DoAndReturn(func(q *domain.Quote) (*domain.Quote, error) {
			persisted = q
			return q, nil
		})

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	view, err := service.CreateQuote(context.Background(), 42, staffingRequest())
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, domain.StatusDraft, persisted.Status)
	assert.Equal(t, 42, persisted.OwnerID)
	assert.Len(t, persisted.Reference, 6)
	assert.InDelta(t, 7077.78, persisted.EstimatedCost, 0.01)

	// O blob persistido precisa descongelar no mesmo snapshot retornado
	thawed, err := snapshot.Thaw(persisted.TechnicalParameters)
	require.NoError(t, err)
	assert.Equal(t, view.Snapshot, thawed)
	assert.True(t, thawed.HasBreakdown())
}

func TestCreateQuote_RequiresClientName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	req := staffingRequest()
	req.ClientName = ""

	_, err := service.CreateQuote(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrMissingClientName)
}

func TestCreateQuote_InvalidParametersRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockRateRepo.EXPECT().ListRates().Return(catalogRates(), nil)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	req := staffingRequest()
	req.Parameters.Profiles[0].Headcount = 0

	_, err := service.CreateQuote(context.Background(), 42, req)
	assert.ErrorIs(t, err, pricing.ErrZeroHeadcount)
}

func TestGetQuote_ClientCannotSeeOthersQuote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockQuoteRepo.EXPECT().
		GetQuoteByID("q-1").
		Return(&domain.Quote{ID: "q-1", OwnerID: 7}, nil).
		Times(2)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	_, err := service.GetQuote(context.Background(), "q-1", clientClaims(99))
	assert.ErrorIs(t, err, ErrAccessDenied)

	view, err := service.GetQuote(context.Background(), "q-1", clientClaims(7))
	require.NoError(t, err)
	assert.Equal(t, "q-1", view.Quote.ID)
}

func TestGetQuote_LegacySnapshotDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockQuoteRepo.EXPECT().
		GetQuoteByID("q-legacy").
		Return(&domain.Quote{
			ID:                  "q-legacy",
			OwnerID:             1,
			TechnicalParameters: []byte(`{"clientName":"Antiga","roles":{"data_engineer":1}}`),
		}, nil)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	view, err := service.GetQuote(context.Background(), "q-legacy", adminClaims())
	require.NoError(t, err)
	assert.False(t, view.Snapshot.HasBreakdown())
}

func TestListQuotes_ScopedByRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	// Admin lista tudo (ownerID nil); cliente lista apenas as próprias
	mockQuoteRepo.EXPECT().ListQuotes(gomock.Nil()).Return(nil, nil)

	ownerID := 7
	mockQuoteRepo.EXPECT().ListQuotes(&ownerID).Return(nil, nil)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	_, err := service.ListQuotes(context.Background(), adminClaims())
	require.NoError(t, err)

	_, err = service.ListQuotes(context.Background(), clientClaims(7))
	require.NoError(t, err)
}

func TestSendQuote_OnlyFromDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockQuoteRepo.EXPECT().
		GetQuoteByID("q-1").
		Return(&domain.Quote{ID: "q-1", OwnerID: 7, Status: domain.StatusSent}, nil)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	err := service.SendQuote(context.Background(), "q-1", clientClaims(7))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecideQuote_AdminApproves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockQuoteRepo.EXPECT().
		GetQuoteByID("q-1").
		Return(&domain.Quote{ID: "q-1", OwnerID: 7, Status: domain.StatusSent}, nil)
	mockQuoteRepo.EXPECT().
		UpdateStatus("q-1", domain.StatusApproved).
		Return(nil)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	err := service.DecideQuote(context.Background(), "q-1", true, adminClaims())
	require.NoError(t, err)
}

func TestDecideQuote_NonAdminDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	err := service.DecideQuote(context.Background(), "q-1", true, clientClaims(7))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSyncStatus_InvalidBudgetSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	status := "APROBADA"
	mockQuoteRepo.EXPECT().
		ApplyUpdate(gomock.Any()).
		DoAndReturn(func(u domain.QuoteUpdate) error {
			require.NotNil(t, u.Status)
			assert.Equal(t, domain.StatusApproved, *u.Status)
			assert.Nil(t, u.EstimatedCost)
			return nil
		})

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	result, err := service.SyncStatus(context.Background(), domain.QuoteSyncRequest{
		ID: "q-1",
		Updates: &domain.QuoteSyncUpdates{
			Status: &status,
			Budget: domain.NewFlexibleNumber("quince mil"),
		},
	})

	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.Equal(t, []string{"status"}, result.Fields)
}

func TestSyncStatus_LegacyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockQuoteRepo.EXPECT().
		ApplyUpdate(gomock.Any()).
		DoAndReturn(func(u domain.QuoteUpdate) error {
			require.NotNil(t, u.Status)
			assert.Equal(t, domain.StatusRejected, *u.Status)
			return nil
		})

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	result, err := service.SyncStatus(context.Background(), domain.QuoteSyncRequest{
		ID:     "q-1",
		Status: "RECHAZADA",
	})

	require.NoError(t, err)
	assert.True(t, result.Updated)
}

func TestSyncStatus_UnknownStatusRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	_, err := service.SyncStatus(context.Background(), domain.QuoteSyncRequest{
		ID:     "q-1",
		Status: "PERDIDA",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Contains(t, err.Error(), "PERDIDA")
}

func TestSyncStatus_QuoteNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	mockQuoteRepo.EXPECT().
		ApplyUpdate(gomock.Any()).
		Return(repository.ErrNotFound)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	_, err := service.SyncStatus(context.Background(), domain.QuoteSyncRequest{
		ID:     "q-missing",
		Status: "ENVIADA",
	})

	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestSyncStatus_NoFieldsIsNoWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuoteRepo := mocks.NewMockQuoteRepository(ctrl)
	mockRateRepo := mocks.NewMockRateRepository(ctrl)

	service := NewService(mockQuoteRepo, rating.NewService(mockRateRepo))

	result, err := service.SyncStatus(context.Background(), domain.QuoteSyncRequest{
		ID: "q-1",
		Updates: &domain.QuoteSyncUpdates{
			Budget: domain.NewFlexibleNumber("n/a"),
		},
	})

	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Empty(t, result.Fields)
}
