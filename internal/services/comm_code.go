package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
)

var ErrInvalidCodeQuery = errors.New("codeGrp and mUsiteNo are required")

// CommCodeService serves M_COMM_CODE lookups through a read-through cache.
type CommCodeService struct {
	store   *store.Store
	cache   core.Cache[[]models.CommCode]
	ttl     time.Duration
	metrics core.Recorder
}

func NewCommCodeService(
	s *store.Store,
	cache core.Cache[[]models.CommCode],
	ttl time.Duration,
	m core.Recorder,
) *CommCodeService {
	return &CommCodeService{
		store:   s,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
	}
}

func commCodeCacheKey(codeGrp string, usiteNo int64) string {
	return fmt.Sprintf("comm_code:%s:%d", codeGrp, usiteNo)
}

// GetCommCodes returns the active codes of codeGrp for tenant usiteNo.
func (s *CommCodeService) GetCommCodes(
	ctx context.Context,
	codeGrp string,
	usiteNo int64,
) ([]models.CommCode, error) {
	codeGrp = strings.TrimSpace(codeGrp)
	if codeGrp == "" || usiteNo <= 0 {
		return nil, ErrInvalidCodeQuery
	}

	codes, err := s.cache.GetWithFetch(
		ctx,
		commCodeCacheKey(codeGrp, usiteNo),
		s.ttl,
		func(ctx context.Context, _ string) ([]models.CommCode, error) {
			codes, err := s.store.ListCommCodes(ctx, codeGrp, usiteNo)
			if err != nil {
				s.metrics.RecordDatabaseQueryError("list_comm_codes")
				return nil, err
			}
			return codes, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []models.CommCode{}
	}
	return codes, nil
}
