package handler

import (
	"net/http"
	"testing"

	"github.com/storeintelligence/quoting-api/infrastructure/repository"
	"github.com/storeintelligence/quoting-api/infrastructure/repository/mocks"
	"github.com/storeintelligence/quoting-api/internal/domain"
	"github.com/storeintelligence/quoting-api/internal/usecases/quoting"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
	"github.com/storeintelligence/quoting-api/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func statusSyncHandler(t *testing.T) (http.Handler, *mocks.MockQuoteRepository) {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	quoteRepo := mocks.NewMockQuoteRepository(ctrl)
	rateRepo := mocks.NewMockRateRepository(ctrl)

	service := quoting.NewService(quoteRepo, rating.NewService(rateRepo))
	return SyncStatus(service, syncConfig()), quoteRepo
}

func TestSyncStatus_RejectsMissingAPIKey(t *testing.T) {
	h, _ := statusSyncHandler(t)

	rec := postSync(t, h, "/v1/sync/status", "", `{"id":"q-1","status":"APROBADA"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidAPIKey, decodeAPIError(t, rec).Code)
}

func TestSyncStatus_UnknownQuoteIsNotFound(t *testing.T) {
	h, quoteRepo := statusSyncHandler(t)

	quoteRepo.EXPECT().ApplyUpdate(gomock.Any()).Return(repository.ErrNotFound)

	rec := postSync(t, h, "/v1/sync/status", testSyncKey, `{"id":"inexistente","status":"APROBADA"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrQuoteNotFound, decodeAPIError(t, rec).Code)
}

func TestSyncStatus_InvalidStatusNamesOffender(t *testing.T) {
	h, _ := statusSyncHandler(t)

	rec := postSync(t, h, "/v1/sync/status", testSyncKey,
		`{"id":"q-1","updates":{"status":"PERDIDA"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, apiErrors.ErrInvalidStatusChange, apiErr.Code)
	assert.Contains(t, apiErr.Message, "PERDIDA")
}

func TestSyncStatus_MissingIDIsBadRequest(t *testing.T) {
	h, _ := statusSyncHandler(t)

	rec := postSync(t, h, "/v1/sync/status", testSyncKey, `{"updates":{"status":"APROBADA"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
}

func TestSyncStatus_InvalidBudgetSkipsField(t *testing.T) {
	h, quoteRepo := statusSyncHandler(t)

	quoteRepo.EXPECT().
		ApplyUpdate(gomock.Any()).
		DoAndReturn(func(update domain.QuoteUpdate) error {
			require.NotNil(t, update.Status)
			assert.Equal(t, domain.StatusApproved, *update.Status)
			assert.Nil(t, update.EstimatedCost)
			return nil
		})

	rec := postSync(t, h, "/v1/sync/status", testSyncKey,
		`{"id":"q-1","updates":{"status":"APROBADA","budget":"sin definir"}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusSyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Updated)
	assert.Equal(t, []string{"status"}, resp.UpdatedFields)
}

func TestSyncStatus_LegacyPayloadApplies(t *testing.T) {
	h, quoteRepo := statusSyncHandler(t)

	quoteRepo.EXPECT().
		ApplyUpdate(gomock.Any()).
		DoAndReturn(func(update domain.QuoteUpdate) error {
			require.NotNil(t, update.Status)
			assert.Equal(t, domain.StatusSent, *update.Status)
			return nil
		})

	rec := postSync(t, h, "/v1/sync/status", testSyncKey, `{"id":"q-1","status":"ENVIADA"}`)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncStatus_NoFieldsDoesNotWrite(t *testing.T) {
	h, _ := statusSyncHandler(t)
	// Nenhuma chamada ao repositório esperada

	rec := postSync(t, h, "/v1/sync/status", testSyncKey, `{"id":"q-1","updates":{}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusSyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Updated)
	assert.Empty(t, resp.UpdatedFields)
}
