package services

import (
	"context"
	"testing"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/cache"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/mocks"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetCommCodes_CacheMiss(t *testing.T) {
	db := setupTestStore(t)
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[[]models.CommCode](ctrl)

	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "comm_code:USE_FLAG:1", time.Minute, gomock.Any()).
		DoAndReturn(callFetchFn[[]models.CommCode]).Times(1)

	svc := NewCommCodeService(db, mockCache, time.Minute, metrics.NewNoopMetrics())
	codes, err := svc.GetCommCodes(context.Background(), "USE_FLAG", 1)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "사용", codes[0].CodeName)
}

func TestGetCommCodes_CacheHit(t *testing.T) {
	db := setupTestStore(t)
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[[]models.CommCode](ctrl)

	cached := []models.CommCode{{CodeGrp: "USE_FLAG", CodeVal: "9", CodeName: "cached"}}
	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "comm_code:USE_FLAG:1", gomock.Any(), gomock.Any()).
		Return(cached, nil)

	svc := NewCommCodeService(db, mockCache, time.Minute, metrics.NewNoopMetrics())
	codes, err := svc.GetCommCodes(context.Background(), "USE_FLAG", 1)
	require.NoError(t, err)
	assert.Equal(t, cached, codes)
}

func TestGetCommCodes_PerTenantKeys(t *testing.T) {
	db := setupTestStore(t)
	svc := NewCommCodeService(db, cache.NewMemoryCache[[]models.CommCode](), time.Minute, metrics.NewNoopMetrics())

	codes, err := svc.GetCommCodes(context.Background(), "USE_FLAG", 2)
	require.NoError(t, err)
	assert.NotNil(t, codes)
	assert.Empty(t, codes, "seed data belongs to tenant 1 only")

	codes, err = svc.GetCommCodes(context.Background(), "USE_FLAG", 1)
	require.NoError(t, err)
	assert.Len(t, codes, 2)
}

func TestGetCommCodes_InvalidQuery(t *testing.T) {
	db := setupTestStore(t)
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[[]models.CommCode](ctrl)
	mockCache.EXPECT().GetWithFetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	svc := NewCommCodeService(db, mockCache, time.Minute, metrics.NewNoopMetrics())

	_, err := svc.GetCommCodes(context.Background(), " ", 1)
	assert.ErrorIs(t, err, ErrInvalidCodeQuery)

	_, err = svc.GetCommCodes(context.Background(), "USE_FLAG", 0)
	assert.ErrorIs(t, err, ErrInvalidCodeQuery)
}

func TestGetCommCodes_StoreErrorRecorded(t *testing.T) {
	db := setupTestStore(t)
	require.NoError(t, db.Close())

	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().RecordDatabaseQueryError("list_comm_codes").Times(1)

	svc := NewCommCodeService(db, cache.NewMemoryCache[[]models.CommCode](), time.Minute, recorder)
	_, err := svc.GetCommCodes(context.Background(), "USE_FLAG", 1)
	assert.Error(t, err)
}
