package api

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/params", s.handleGetParams)

		pools := api.Group("/pools")
		{
			pools.GET("", s.handleGetPools)
			pools.GET("/count", s.handleGetPoolCount)
			pools.GET("/:pool_id", s.handleGetPool)
			pools.GET("/:pool_id/shares/:address", s.handleGetShares)
			pools.GET("/:pool_id/quote", s.handleQuote)
			pools.GET("/:pool_id/required-amounts", s.handleRequiredAmounts)

			poolsProtected := pools.Group("")
			poolsProtected.Use(s.AuthMiddleware(RoleTrader))
			{
				poolsProtected.POST("", s.handleCreatePool)
				poolsProtected.POST("/:pool_id/add-liquidity", s.handleAddLiquidity)
				poolsProtected.POST("/:pool_id/remove-liquidity", s.handleRemoveLiquidity)
			}
		}

		deposits := api.Group("/deposits")
		{
			deposits.GET("/:address", s.handleGetDeposits)
			deposits.GET("/:address/:denom", s.handleGetDeposit)
		}

		trader := api.Group("")
		trader.Use(s.AuthMiddleware(RoleTrader))
		{
			trader.POST("/swap", s.handleSwap)
			trader.POST("/swap/execute", s.handleExecute)
			trader.POST("/withdrawals", s.handleRequestWithdrawal)
		}

		custody := api.Group("/custody")
		custody.Use(s.AuthMiddleware(RoleCustodian))
		{
			custody.POST("/deposits", s.handleCustodyDeposit)
			custody.GET("/withdrawals", s.handleGetPendingWithdrawals)
			custody.POST("/withdrawals/:id/confirm", s.handleConfirmWithdrawal)
		}
	}
}

// execute runs fn as one committed operation, writing the error response on failure.
func (s *Server) execute(c *gin.Context, fn func(ctx sdk.Context, k *keeper.Keeper) error) bool {
	if err := s.app.Execute(fn); err != nil {
		s.respondError(c, err)
		return false
	}
	return true
}

// query runs fn against committed state, writing the error response on failure.
func (s *Server) query(c *gin.Context, fn func(ctx sdk.Context, k *keeper.Keeper) error) bool {
	if err := s.app.Query(fn); err != nil {
		s.respondError(c, err)
		return false
	}
	return true
}

func uintParam(c *gin.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return v, true
}

func addressParam(c *gin.Context) (sdk.AccAddress, bool) {
	addr, err := sdk.AccAddressFromBech32(c.Param("address"))
	if err != nil {
		badRequest(c, "Invalid address", err)
		return nil, false
	}
	return addr, true
}

func uintQuery(c *gin.Context, name string, def uint64) (uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		badRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return v, true
}

func intQuery(c *gin.Context, name string) (math.Int, bool) {
	v, ok := math.NewIntFromString(c.Query(name))
	if !ok {
		badRequest(c, "Invalid "+name, nil)
		return math.Int{}, false
	}
	return v, true
}

func requireInt(c *gin.Context, name string, v math.Int) bool {
	if v.IsNil() {
		badRequest(c, name+" is required", nil)
		return false
	}
	return true
}

func callerAccount(c *gin.Context) sdk.AccAddress {
	return c.MustGet(ctxKeyAccount).(sdk.AccAddress)
}
