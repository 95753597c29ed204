package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	pruningtypes "cosmossdk.io/store/pruning/types"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"

	"github.com/paw-chain/multiswap/x/multiswap/keeper"
	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// ErrAlreadyInitialized is returned by InitChain when the store already holds
// committed state.
var ErrAlreadyInitialized = errors.New("state already initialized")

// App owns the multiswap state. Every mutation goes through Execute, which
// runs one operation at a time against a branch of the committed store and
// commits the branch only when the operation succeeds.
type App struct {
	mu sync.RWMutex

	logger  log.Logger
	db      dbm.DB
	cms     storetypes.CommitMultiStore
	key     *storetypes.KVStoreKey
	keeper  *keeper.Keeper
	chainID string

	// custodian moves withdrawn assets out of the system. It is only called
	// after the withdrawal request has been committed.
	custodian types.AssetCustodian

	invCheckPeriod uint
	height         int64
}

// New opens the state stored in db. custodian receives each withdrawal once
// its request has committed; when nil, withdrawals stay pending until they are
// confirmed over the API.
func New(logger log.Logger, db dbm.DB, custodian types.AssetCustodian, appOpts servertypes.AppOptions) (*App, error) {
	chainID := cast.ToString(appOpts.Get(FlagChainID))
	if chainID == "" {
		chainID = DefaultChainID
	}
	pruning := cast.ToString(appOpts.Get(FlagPruning))
	if pruning == "" {
		pruning = DefaultPruning
	}

	key := storetypes.NewKVStoreKey(types.StoreKey)
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	cms.SetPruning(pruningtypes.NewPruningOptionsFromString(pruning))
	cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	app := &App{
		logger:         logger.With("module", "app"),
		db:             db,
		cms:            cms,
		key:            key,
		keeper:         keeper.NewKeeper(key, nil, WithdrawalOutbox{}),
		chainID:        chainID,
		custodian:      custodian,
		invCheckPeriod: cast.ToUint(appOpts.Get(FlagInvCheckPeriod)),
		height:         cms.LastCommitID().Version,
	}

	app.keeper.SyncGauges(app.committedContext())
	app.logger.Info("state loaded", "height", app.height, "chain_id", chainID, "pruning", pruning)
	return app, nil
}

// Initialized reports whether any state has been committed.
func (a *App) Initialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.height > 0
}

// Height returns the number of the last committed operation.
func (a *App) Height() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.height
}

// ChainID returns the chain id stamped on every context.
func (a *App) ChainID() string {
	return a.chainID
}

// InitChain loads genesis into an empty store and commits it.
func (a *App) InitChain(genState types.GenesisState) error {
	if a.Initialized() {
		return ErrAlreadyInitialized
	}
	return a.Execute(func(ctx sdk.Context, k *keeper.Keeper) error {
		return k.InitGenesis(ctx, genState)
	})
}

// Execute runs fn against a branch of the committed state. The branch is
// committed when fn returns nil and the invariants (if due) hold; otherwise it
// is discarded and the store is left exactly as it was. Withdrawals requested
// by fn are handed to the custodian after the commit; see dispatchWithdrawals.
func (a *App) Execute(fn func(ctx sdk.Context, k *keeper.Keeper) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	events, err := a.commit(fn)
	if err != nil {
		return err
	}
	return a.dispatchWithdrawals(events)
}

// commit is Execute without the lock or the custodian hand-off. It returns the
// events of the committed operation.
func (a *App) commit(fn func(ctx sdk.Context, k *keeper.Keeper) error) (sdk.Events, error) {
	next := a.height + 1
	branch := a.cms.CacheMultiStore()
	ctx := a.newContext(branch, next)

	if err := fn(ctx, a.keeper); err != nil {
		return nil, err
	}

	if a.invCheckPeriod > 0 && uint(next)%a.invCheckPeriod == 0 {
		if msg, broken := keeper.AllInvariants(*a.keeper)(ctx); broken {
			a.logger.Error("invariant broken, discarding operation", "height", next, "msg", msg)
			return nil, types.ErrInvariantViolation.Wrap(msg)
		}
	}

	branch.Write()
	commitID := a.cms.Commit()
	a.height = commitID.Version

	events := ctx.EventManager().Events()
	a.keeper.RecordCommitted(a.committedContext(), events)
	a.logger.Debug("committed", "height", a.height, "events", len(events))
	return events, nil
}

// Query runs fn against a throwaway branch of the committed state.
func (a *App) Query(fn func(ctx sdk.Context, k *keeper.Keeper) error) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return fn(a.newContext(a.cms.CacheMultiStore(), a.height), a.keeper)
}

// ExportGenesis dumps the committed state.
func (a *App) ExportGenesis() (*types.GenesisState, error) {
	var genState *types.GenesisState
	err := a.Query(func(ctx sdk.Context, k *keeper.Keeper) error {
		var err error
		genState, err = k.ExportGenesis(ctx)
		return err
	})
	return genState, err
}

// Close releases the underlying database.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db.Close()
}

func (a *App) committedContext() sdk.Context {
	return a.newContext(a.cms.CacheMultiStore(), a.height)
}

func (a *App) newContext(ms storetypes.MultiStore, height int64) sdk.Context {
	header := cmtproto.Header{
		ChainID: a.chainID,
		Height:  height,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(ms, header, false, a.logger)
}
