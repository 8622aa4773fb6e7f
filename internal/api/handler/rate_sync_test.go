package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/storeintelligence/quoting-api/infrastructure/repository/mocks"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/internal/pricing"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
	"github.com/storeintelligence/quoting-api/pkg/apiErrors"
	"github.com/storeintelligence/quoting-api/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSyncKey = "sync-key-test"

func syncConfig() *config.Config {
	return &config.Config{
		RateSync: config.RateSync{APIKey: testSyncKey},
	}
}

func postSync(t *testing.T, h http.Handler, path, apiKey, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestSyncRates_RejectsMissingAPIKey(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockRateRepository(ctrl)

	h := SyncRates(rating.NewService(rateRepo), syncConfig())

	rec := postSync(t, h, "/v1/sync/rates", "", `{"profileName":"Data Engineer","jr":4000}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidAPIKey, decodeAPIError(t, rec).Code)
}

func TestSyncRates_RejectsWrongAPIKey(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockRateRepository(ctrl)

	h := SyncRates(rating.NewService(rateRepo), syncConfig())

	rec := postSync(t, h, "/v1/sync/rates", "outra-chave", `{"profileName":"Data Engineer","jr":4000}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncRates_UnknownProfileNamesOffender(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockRateRepository(ctrl)

	h := SyncRates(rating.NewService(rateRepo), syncConfig())

	rec := postSync(t, h, "/v1/sync/rates", testSyncKey, `{"profileName":"Fullstack Ninja","jr":4000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, apiErrors.ErrUnrecognizedProfile, apiErr.Code)
	assert.Contains(t, apiErr.Message, "Fullstack Ninja")
}

func TestSyncRates_InvalidValueNamesLevel(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockRateRepository(ctrl)
	// Nenhum nível pode ser gravado quando um valor é inválido

	h := SyncRates(rating.NewService(rateRepo), syncConfig())

	rec := postSync(t, h, "/v1/sync/rates", testSyncKey,
		`{"profileName":"Data Engineer","jr":4000,"med":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, apiErrors.ErrInvalidRateValue, apiErr.Code)
	assert.Contains(t, apiErr.Message, "med")
}

func TestSyncRates_AppliesPresentLevels(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockRateRepository(ctrl)

	rateRepo.EXPECT().
		UpsertLevels(gomock.Any(), "Data Engineer", map[pricing.Seniority]float64{
			pricing.SeniorityJr:  4000,
			pricing.SenioritySsr: 5000.50,
		}).
		Return(nil)

	h := SyncRates(rating.NewService(rateRepo), syncConfig())

	rec := postSync(t, h, "/v1/sync/rates", testSyncKey,
		`{"profileName":"Data Engineer","jr":4000,"med":"5000.50"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RateSyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Data Engineer", resp.ProfileName)
	assert.Equal(t, []string{"jr", "med"}, resp.UpdatedLevels)
}

func TestSyncRates_EmptyLevelsIsNoOp(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	rateRepo := mocks.NewMockRateRepository(ctrl)

	h := SyncRates(rating.NewService(rateRepo), syncConfig())

	rec := postSync(t, h, "/v1/sync/rates", testSyncKey, `{"profileName":"Data Engineer"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RateSyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.UpdatedLevels)
}
