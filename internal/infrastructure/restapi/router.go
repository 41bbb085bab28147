package restapi

import (
	"html/template"
	"time"

	"holo_vault_analyzer/internal/infrastructure/session"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Dashboard *DashboardHandler
	Wallet    *WalletHandler
	Pools     *PoolHandler
	Contract  *ContractHandler
	FHE       *FHEHandler
}

// RouterOptions carries the cross-cutting dependencies of the router.
type RouterOptions struct {
	Sessions        *session.Store
	SessionTTL      time.Duration
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	Logger          *zap.Logger
	SwaggerEnabled  bool
	SwaggerSpecPath string
}

// SetupRouter builds the gin engine serving the dashboard page, the JSON API,
// Prometheus metrics and the Swagger UI.
func SetupRouter(h Handlers, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", SessionHeader}
	corsConfig.ExposeHeaders = []string{SessionHeader}
	router.Use(cors.New(corsConfig))

	router.Use(RequestLogger(opts.Logger))
	router.Use(RequestMetrics(opts.Metrics))
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(template.Must(template.New(dashboardTemplateName).Funcs(templateFuncs).Parse(dashboardTemplate)))

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	if opts.SwaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecPath)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))
	}

	withSession := Sessions(opts.Sessions, opts.SessionTTL)

	router.GET("/", withSession, h.Dashboard.Page)

	v1 := router.Group("/api/v1", withSession)
	{
		v1.GET("/dashboard", h.Dashboard.GetDashboard)
		v1.GET("/analytics", h.Dashboard.GetAnalytics)
		v1.POST("/analytics/refresh", h.Dashboard.RefreshAnalytics)

		v1.GET("/wallet", h.Wallet.GetWallet)
		v1.POST("/wallet/connect", h.Wallet.Connect)
		v1.POST("/wallet/disconnect", h.Wallet.Disconnect)

		v1.GET("/pools", h.Pools.ListPools)
		v1.GET("/pools/onchain", h.Pools.PoolsOnChain)
		v1.GET("/pools/:index/detail", h.Pools.GetDetail)
		v1.POST("/pools/:index/detail/open", h.Pools.OpenDetail)
		v1.POST("/pools/:index/detail/close", h.Pools.CloseDetail)
		v1.POST("/pools/:index/detail/raw", h.Pools.ToggleRawData)
		v1.PUT("/pools/:index/detail/tab", h.Pools.SelectTab)

		v1.GET("/contract/roles", h.Contract.GetRoles)
		v1.GET("/contract/pools/:poolId", h.Contract.GetPoolInfo)
		v1.POST("/contract/pools", h.Contract.CreatePool)
		v1.PUT("/contract/pools/:poolId", h.Contract.UpdatePoolData)
		v1.POST("/contract/pools/:poolId/pause", h.Contract.PausePool)
		v1.POST("/contract/pools/:poolId/unpause", h.Contract.UnpausePool)
		v1.POST("/contract/positions", h.Contract.AddPosition)
		v1.GET("/contract/users/:address/positions/:positionId", h.Contract.GetUserPosition)
		v1.GET("/contract/users/:address/reputation", h.Contract.GetUserReputation)
		v1.POST("/contract/providers", h.Contract.SetAuthorizedProvider)
		v1.POST("/contract/reputation", h.Contract.UpdateUserReputation)
		v1.POST("/contract/ownership", h.Contract.TransferOwnership)
		v1.GET("/tx/:hash/events", h.Contract.TransactionEvents)

		v1.POST("/fhe/encrypt", h.FHE.Encrypt)
		v1.POST("/fhe/decrypt", h.FHE.Decrypt)
		v1.POST("/fhe/proof", h.FHE.Proof)
	}

	return router
}
