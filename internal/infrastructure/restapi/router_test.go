package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/app/provider"
	"holo_vault_analyzer/internal/app/service"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/infrastructure/fhe"
	"holo_vault_analyzer/internal/infrastructure/network/client"
	"holo_vault_analyzer/internal/infrastructure/session"
	"holo_vault_analyzer/internal/pkg/logger"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x00000000000000000000000000000000000000b0"

type testServer struct {
	router    *gin.Engine
	contract  *client.MockHoloVaultClient
	analytics port.AnalyticsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	contract := client.NewMockHoloVaultClient(common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), log)
	encryptor := fhe.NewMockEncryptor()
	pools := provider.NewPoolProvider("", log)
	analytics := service.NewAnalyticsService(contract, time.Minute, time.Minute, log)
	poolSvc := service.NewPoolService(contract, encryptor, 2, log)

	router := SetupRouter(Handlers{
		Dashboard: NewDashboardHandler(service.NewDashboardService(analytics, pools, true, log), analytics),
		Wallet:    NewWalletHandler(log),
		Pools:     NewPoolHandler(pools, service.NewPoolDetailService(pools, encryptor, log), poolSvc),
		Contract:  NewContractHandler(contract, poolSvc, encryptor),
		FHE:       NewFHEHandler(encryptor),
	}, RouterOptions{
		Sessions:   session.NewStore(time.Minute, time.Minute, m),
		SessionTTL: time.Minute,
		Metrics:    m,
		Gatherer:   reg,
	})
	return &testServer{router: router, contract: contract, analytics: analytics}
}

// do performs a request within session sid (empty for a new session) and
// returns the recorder.
func (s *testServer) do(t *testing.T, method, path, sid string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.Header.Set(SessionHeader, sid)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *testServer) connect(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/wallet/connect", "", ConnectWalletRequest{Address: testWallet})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp WalletResponse
	decode(t, w, &resp)
	require.True(t, resp.Connected)
	return resp.SessionID
}

func TestSessionIssued(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/wallet", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	sid := w.Header().Get(SessionHeader)
	assert.NotEmpty(t, sid)
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+sid)

	again := s.do(t, http.MethodGet, "/api/v1/wallet", sid, nil)
	assert.Equal(t, sid, again.Header().Get(SessionHeader))
	assert.Empty(t, again.Header().Get("Set-Cookie"))
}

func TestWalletConnectFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/wallet/connect", "", ConnectWalletRequest{Address: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sid := s.connect(t)
	w = s.do(t, http.MethodGet, "/api/v1/wallet", sid, nil)
	var resp WalletResponse
	decode(t, w, &resp)
	assert.True(t, resp.Connected)
	assert.Equal(t, common.HexToAddress(testWallet).Hex(), resp.Address)

	w = s.do(t, http.MethodPost, "/api/v1/wallet/disconnect", sid, nil)
	decode(t, w, &resp)
	assert.False(t, resp.Connected)
}

func TestDashboardDisconnectedShowsConnectWallet(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view entity.DashboardView
	decode(t, w, &view)
	require.Len(t, view.Metrics, 4)
	for _, m := range view.Metrics {
		assert.Equal(t, service.ConnectWalletText, m.Value)
	}
	assert.Len(t, view.Pools, 3)
}

func TestDashboardConnected(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.analytics.Load(context.Background()))
	sid := s.connect(t)

	w := s.do(t, http.MethodGet, "/api/v1/dashboard", sid, nil)
	var view entity.DashboardView
	decode(t, w, &view)
	assert.True(t, view.Connected)
	assert.Equal(t, "$141.2M", view.Metrics[0].Value)
	assert.Equal(t, "$9.3M", view.Metrics[1].Value)
	assert.Equal(t, "12", view.Metrics[2].Value)
	assert.Equal(t, "8.49%", view.Metrics[3].Value)
}

func TestDashboardPage(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Holo Vault Analyzer")
	assert.Contains(t, body, "Connect Wallet")
	assert.Contains(t, body, "TVL Trend (7 Days)")
	assert.Contains(t, body, "Fully Encrypted")
	assert.Contains(t, body, "Powered by Fully Homomorphic Encryption")
}

func TestAnalyticsEndpoints(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/analytics/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap entity.AnalyticsSnapshot
	decode(t, w, &snap)
	require.NotNil(t, snap.Analytics)
	assert.Equal(t, uint8(12), snap.Analytics.ActivePools)
}

func TestPoolDetailFlow(t *testing.T) {
	s := newTestServer(t)
	sid := s.do(t, http.MethodGet, "/api/v1/wallet", "", nil).Header().Get(SessionHeader)

	var view entity.PoolDetailView
	w := s.do(t, http.MethodGet, "/api/v1/pools/0/detail", sid, nil)
	decode(t, w, &view)
	assert.Equal(t, entity.PhaseClosed, view.Phase)

	w = s.do(t, http.MethodPut, "/api/v1/pools/0/detail/tab", sid, SelectTabRequest{Tab: "tokens"})
	assert.Equal(t, http.StatusConflict, w.Code)

	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodPost, "/api/v1/pools/0/detail/open", sid, nil)
		decode(t, w, &view)
		assert.Equal(t, entity.PhaseOpenOverview, view.Phase)
		assert.Equal(t, entity.TabOverview, view.Tab)
		require.NotNil(t, view.Overview)

		w = s.do(t, http.MethodPut, "/api/v1/pools/0/detail/tab", sid, SelectTabRequest{Tab: "tokens"})
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &view)
		assert.Equal(t, entity.PhaseOpenTokens, view.Phase)
		require.NotNil(t, view.Tokens)

		w = s.do(t, http.MethodPost, "/api/v1/pools/0/detail/raw", sid, nil)
		decode(t, w, &view)
		assert.True(t, view.RawDataShown)
		require.NotNil(t, view.RawData)
		assert.True(t, strings.HasPrefix(view.RawData.TVL, "encrypted_45200000_"))

		w = s.do(t, http.MethodPost, "/api/v1/pools/0/detail/close", sid, nil)
		decode(t, w, &view)
		assert.Equal(t, entity.PhaseClosed, view.Phase)
	}

	w = s.do(t, http.MethodPut, "/api/v1/pools/0/detail/tab", sid, SelectTabRequest{Tab: "history"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPoolDetailErrors(t *testing.T) {
	s := newTestServer(t)
	sid := s.do(t, http.MethodGet, "/api/v1/wallet", "", nil).Header().Get(SessionHeader)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/pools/7/detail/open", sid, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/pools/x/detail/open", sid, nil).Code)

	// USDC/USDT is public, so there is no raw data.
	s.do(t, http.MethodPost, "/api/v1/pools/2/detail/open", sid, nil)
	w := s.do(t, http.MethodPost, "/api/v1/pools/2/detail/raw", sid, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var errResp ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, entity.ErrRawDataUnavailable.Error(), errResp.Error)
}

func TestCreatePoolAndEvents(t *testing.T) {
	s := newTestServer(t)
	in := entity.CreatePoolInput{Name: "ETH/USDC", TokenPair: "Ethereum • USDC", InitialTVL: 45}

	w := s.do(t, http.MethodPost, "/api/v1/contract/pools", "", in)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sid := s.connect(t)
	w = s.do(t, http.MethodPost, "/api/v1/contract/pools", sid, in)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tx TxResponse
	decode(t, w, &tx)

	w = s.do(t, http.MethodGet, "/api/v1/tx/"+tx.TxHash+"/events", sid, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var events struct {
		Events []entity.ContractEvent `json:"events"`
	}
	decode(t, w, &events)
	require.Len(t, events.Events, 1)
	assert.Equal(t, client.EventPoolCreated, events.Events[0].Name)

	w = s.do(t, http.MethodGet, "/api/v1/pools/onchain?ids=0", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var onchain struct {
		Pools []entity.PoolInfo `json:"pools"`
	}
	decode(t, w, &onchain)
	require.Len(t, onchain.Pools, 1)
	assert.Equal(t, "ETH/USDC", onchain.Pools[0].Name)

	w = s.do(t, http.MethodPost, "/api/v1/contract/positions", sid, entity.AddPositionInput{PoolID: 0, LiquidityAmount: 5, SharePercentage: 10})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/contract/pools/0/pause", sid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/contract/positions", sid, entity.AddPositionInput{PoolID: 0, LiquidityAmount: 5})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestContractReadsAndAdmin(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/contract/pools/9", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/pools/onchain", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/tx/0x1234/events", "", nil).Code)

	sid := s.connect(t)

	w := s.do(t, http.MethodPost, "/api/v1/contract/providers", sid, SetProviderRequest{Provider: testWallet, Authorized: true})
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/contract/providers", sid, SetProviderRequest{Provider: "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/contract/ownership", sid, TransferOwnershipRequest{NewOwner: testWallet})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/contract/roles", sid, nil)
	var roles map[string]string
	decode(t, w, &roles)
	assert.Equal(t, common.HexToAddress(testWallet).Hex(), roles["owner"])

	w = s.do(t, http.MethodGet, "/api/v1/contract/users/"+testWallet+"/positions/1", sid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContractWritesRequireWallet(t *testing.T) {
	s := newTestServer(t)
	sid := s.connect(t)
	w := s.do(t, http.MethodPost, "/api/v1/contract/pools", sid, entity.CreatePoolInput{Name: "ETH/USDC", TokenPair: "Ethereum • USDC"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	writes := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"create pool", http.MethodPost, "/api/v1/contract/pools", entity.CreatePoolInput{Name: "BTC/ETH", TokenPair: "Bitcoin • Ethereum"}},
		{"update pool", http.MethodPut, "/api/v1/contract/pools/0", entity.UpdatePoolDataInput{NewTVL: 50}},
		{"pause", http.MethodPost, "/api/v1/contract/pools/0/pause", nil},
		{"unpause", http.MethodPost, "/api/v1/contract/pools/0/unpause", nil},
		{"add position", http.MethodPost, "/api/v1/contract/positions", entity.AddPositionInput{PoolID: 0, LiquidityAmount: 5}},
		{"authorize provider", http.MethodPost, "/api/v1/contract/providers", SetProviderRequest{Provider: testWallet, Authorized: true}},
		{"update reputation", http.MethodPost, "/api/v1/contract/reputation", UpdateReputationRequest{User: testWallet, Reputation: 80}},
		{"transfer ownership", http.MethodPost, "/api/v1/contract/ownership", TransferOwnershipRequest{NewOwner: testWallet}},
	}
	for _, tt := range writes {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
			var errResp ErrorResponse
			decode(t, w, &errResp)
			assert.Equal(t, entity.ErrWalletNotConnected.Error(), errResp.Error)

			w = s.do(t, tt.method, tt.path, sid, tt.body)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}

	w = s.do(t, http.MethodGet, "/api/v1/contract/roles", "", nil)
	var roles map[string]string
	decode(t, w, &roles)
	assert.Equal(t, common.HexToAddress(testWallet).Hex(), roles["owner"])
}

func TestUpdateReputationRoundTrip(t *testing.T) {
	s := newTestServer(t)
	sid := s.connect(t)

	w := s.do(t, http.MethodPost, "/api/v1/contract/reputation", sid, UpdateReputationRequest{User: testWallet, Reputation: 80})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/contract/users/"+testWallet+"/reputation", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rep struct {
		User       string `json:"user"`
		Reputation uint8  `json:"reputation"`
	}
	decode(t, w, &rep)
	assert.Equal(t, uint8(80), rep.Reputation)

	w = s.do(t, http.MethodPost, "/api/v1/contract/reputation", sid, UpdateReputationRequest{User: testWallet, Reputation: 256})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWriteOnMissingPoolIsBadGateway(t *testing.T) {
	s := newTestServer(t)
	sid := s.connect(t)

	for _, path := range []string{"/api/v1/contract/pools/9/pause", "/api/v1/contract/pools/9/unpause"} {
		w := s.do(t, http.MethodPost, path, sid, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code, path)
	}
	w := s.do(t, http.MethodPost, "/api/v1/contract/positions", sid, entity.AddPositionInput{PoolID: 9})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	w = s.do(t, http.MethodPut, "/api/v1/contract/pools/9", sid, entity.UpdatePoolDataInput{NewTVL: 1})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wallet", entity.ErrWalletNotConnected, http.StatusUnauthorized},
		{"pool", fmt.Errorf("pool 3: %w", entity.ErrPoolNotFound), http.StatusNotFound},
		{"tab", entity.ErrUnknownTab, http.StatusBadRequest},
		{"ciphertext", entity.ErrNotCiphertext, http.StatusBadRequest},
		{"closed", entity.ErrDetailClosed, http.StatusConflict},
		{"raw", entity.ErrRawDataUnavailable, http.StatusConflict},
		{"tx", &entity.TransactionError{Method: "createPool", Err: errors.New("nonce too low")}, http.StatusBadGateway},
		{"tx on missing pool", &entity.TransactionError{Method: "pausePool", Err: fmt.Errorf("pool 9: %w", entity.ErrPoolNotFound)}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err, http.StatusTeapot))
		})
	}
}

func TestFHEEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/fhe/encrypt", "", map[string]uint64{"value": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var enc map[string]string
	decode(t, w, &enc)
	assert.True(t, strings.HasPrefix(enc["ciphertext"], "encrypted_0_"))

	w = s.do(t, http.MethodPost, "/api/v1/fhe/decrypt", "", CiphertextRequest{Ciphertext: enc["ciphertext"]})
	require.Equal(t, http.StatusOK, w.Code)
	var dec map[string]uint64
	decode(t, w, &dec)
	assert.Equal(t, uint64(0), dec["value"])

	w = s.do(t, http.MethodPost, "/api/v1/fhe/decrypt", "", CiphertextRequest{Ciphertext: "plain"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/fhe/proof", "", map[string]uint64{"value": 9})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/fhe/encrypt", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/v1/pools", "", nil)
	w := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "holovault_http_requests_total")
}
