package api

import (
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

func (s *Server) handleGetParams(c *gin.Context) {
	var params types.Params
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		params, err = k.GetParams(ctx)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, params)
}

// handleGetPools returns one page of pools ordered by id.
func (s *Server) handleGetPools(c *gin.Context) {
	offset, ok := uintQuery(c, "offset", 0)
	if !ok {
		return
	}
	limit, ok := uintQuery(c, "limit", keeper.MaxPoolsPageSize)
	if !ok {
		return
	}

	resp := PoolsResponse{Offset: offset}
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.Total = k.GetPoolCount(ctx)
		resp.Pools, err = k.GetPools(ctx, offset, limit)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetPoolCount(c *gin.Context) {
	var count uint64
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		count = k.GetPoolCount(ctx)
		return nil
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) handleGetPool(c *gin.Context) {
	poolID, ok := uintParam(c, "pool_id")
	if !ok {
		return
	}
	var info types.PoolInfo
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		info, err = k.GetPoolInfo(ctx, poolID)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleGetShares(c *gin.Context) {
	poolID, ok := uintParam(c, "pool_id")
	if !ok {
		return
	}
	provider, ok := addressParam(c)
	if !ok {
		return
	}
	var shares math.Int
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		shares, err = k.GetShareBalance(ctx, poolID, provider)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, SharesResponse{PoolId: poolID, Provider: provider.String(), Shares: shares})
}

// handleQuote previews a swap: ?token_in=&amount_in=&token_out=
func (s *Server) handleQuote(c *gin.Context) {
	poolID, ok := uintParam(c, "pool_id")
	if !ok {
		return
	}
	amountIn, ok := intQuery(c, "amount_in")
	if !ok {
		return
	}
	resp := QuoteResponse{
		PoolId:   poolID,
		TokenIn:  c.Query("token_in"),
		AmountIn: amountIn,
		TokenOut: c.Query("token_out"),
	}
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.AmountOut, err = k.GetReturn(ctx, poolID, resp.TokenIn, amountIn, resp.TokenOut)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleRequiredAmounts answers ?shares= with the deposit that mints them.
func (s *Server) handleRequiredAmounts(c *gin.Context) {
	poolID, ok := uintParam(c, "pool_id")
	if !ok {
		return
	}
	shares, ok := intQuery(c, "shares")
	if !ok {
		return
	}
	resp := RequiredAmountsResponse{PoolId: poolID, Shares: shares}
	if !s.query(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.Amounts, err = k.GetRequiredAmounts(ctx, poolID, shares)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreatePool(c *gin.Context) {
	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	creator := callerAccount(c)

	var resp CreatePoolResponse
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.PoolId, err = k.CreatePool(ctx, creator, req.Tokens, req.Fee)
		return err
	}) {
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleAddLiquidity(c *gin.Context) {
	poolID, ok := uintParam(c, "pool_id")
	if !ok {
		return
	}
	var req AddLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	for _, a := range req.Amounts {
		if !requireInt(c, "amounts", a) {
			return
		}
	}
	provider := callerAccount(c)

	var resp AddLiquidityResponse
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.Shares, err = k.AddLiquidity(ctx, provider, poolID, req.Amounts)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	poolID, ok := uintParam(c, "pool_id")
	if !ok {
		return
	}
	var req RemoveLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if !requireInt(c, "shares", req.Shares) {
		return
	}
	for _, m := range req.MinAmountsOut {
		if !requireInt(c, "min_amounts_out", m) {
			return
		}
	}
	provider := callerAccount(c)

	var resp RemoveLiquidityResponse
	if !s.execute(c, func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		resp.Amounts, err = k.RemoveLiquidity(ctx, provider, poolID, req.Shares, req.MinAmountsOut)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, resp)
}
