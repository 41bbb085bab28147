package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnalytics() *entity.GlobalAnalytics {
	return &entity.GlobalAnalytics{TotalTVL: 141, TotalVolume24h: 93, AverageAPR: 85, ActivePools: 12, TotalUsers: 156, LastCalculated: big.NewInt(1)}
}

func TestAnalyticsSnapshotLoadsInBackground(t *testing.T) {
	contract := &fakeContract{analytics: sampleAnalytics()}
	svc := NewAnalyticsService(contract, time.Minute, time.Minute, logger.Nop())

	first := svc.Snapshot(context.Background())
	assert.True(t, first.Loading)
	assert.Nil(t, first.Analytics)

	require.Eventually(t, func() bool {
		return !svc.Snapshot(context.Background()).Loading
	}, time.Second, 5*time.Millisecond)

	snap := svc.Snapshot(context.Background())
	require.NotNil(t, snap.Analytics)
	assert.Equal(t, uint8(12), snap.Analytics.ActivePools)
}

func TestAnalyticsFailedReadKeepsLoading(t *testing.T) {
	contract := &fakeContract{}
	svc := NewAnalyticsService(contract, time.Minute, time.Minute, logger.Nop())

	err := svc.Load(context.Background())
	assert.Error(t, err)

	snap := svc.Snapshot(context.Background())
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.Analytics)
}

func TestAnalyticsSingleReadInFlight(t *testing.T) {
	release := make(chan struct{})
	contract := &fakeContract{analytics: sampleAnalytics(), analyticsFn: func() error {
		<-release
		return nil
	}}
	svc := NewAnalyticsService(contract, time.Minute, time.Minute, logger.Nop())

	for i := 0; i < 10; i++ {
		svc.Snapshot(context.Background())
	}
	close(release)

	require.Eventually(t, func() bool {
		return svc.Snapshot(context.Background()).Analytics != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), contract.reads.Load())
}

func TestAnalyticsServesStaleWhileRefreshing(t *testing.T) {
	contract := &fakeContract{analytics: sampleAnalytics()}
	impl := NewAnalyticsService(contract, time.Minute, time.Minute, logger.Nop()).(*analyticsServiceImpl)
	now := time.Now()
	impl.now = func() time.Time { return now }
	require.NoError(t, impl.Load(context.Background()))

	now = now.Add(2 * time.Minute)
	contract.analyticsFn = func() error { return errors.New("node down") }

	snap := impl.Snapshot(context.Background())
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Analytics)
	assert.Equal(t, uint8(141), snap.Analytics.TotalTVL)
}
