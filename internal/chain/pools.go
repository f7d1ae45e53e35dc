// =====================================
// File: internal/chain/pools.go
// =====================================
package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// Memcmp offsets of the mint fields inside pool account data.
const (
	offsetBaseMint  = 8 + 1 + 2 + 32
	offsetQuoteMint = offsetBaseMint + 32
)

// PoolSnapshot bundles a parsed pool with the global config and the
// reserve balances in effect when it was loaded.
type PoolSnapshot struct {
	Pool         *pumpswap.Pool
	Config       *pumpswap.GlobalConfig
	BaseReserve  uint64
	QuoteReserve uint64

	// DataSize is the raw pool account length, kept to detect accounts
	// that predate the coin-creator extension.
	DataSize int
}

// State converts the snapshot into quoting input.
func (s *PoolSnapshot) State() pumpswap.PoolState {
	return s.Pool.State(s.Config, s.BaseReserve, s.QuoteReserve)
}

// NeedsExtend reports whether the pool account must be extended before
// the program will trade against it.
func (s *PoolSnapshot) NeedsExtend() bool {
	return pumpswap.NeedsExtend(s.DataSize)
}

// Service loads and searches AMM pools over RPC.
type Service struct {
	client     *Client
	logger     *zap.Logger
	programID  solana.PublicKey
	maxRetries int
	retryDelay time.Duration

	// global config cache
	cfgOnce sync.Once
	cfg     *pumpswap.GlobalConfig
	cfgErr  error
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	ProgramID  solana.PublicKey
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultServiceOptions returns the settings used when none are given.
func DefaultServiceOptions() ServiceOptions {
	return ServiceOptions{
		ProgramID:  pumpswap.ProgramID,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// NewService creates a pool service on top of the given client.
func NewService(client *Client, logger *zap.Logger, opts ...ServiceOptions) *Service {
	options := DefaultServiceOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	return &Service{
		client:     client,
		logger:     logger.Named("pools"),
		programID:  options.ProgramID,
		maxRetries: options.MaxRetries,
		retryDelay: options.RetryDelay,
	}
}

// GlobalConfig returns the program's configuration account, fetching it
// once and serving every later call from cache.
func (s *Service) GlobalConfig(ctx context.Context) (*pumpswap.GlobalConfig, error) {
	s.cfgOnce.Do(func() {
		s.cfg, s.cfgErr = s.fetchGlobalConfig(ctx)
	})
	return s.cfg, s.cfgErr
}

func (s *Service) fetchGlobalConfig(ctx context.Context) (*pumpswap.GlobalConfig, error) {
	address, _, err := pumpswap.DeriveGlobalConfigAddress()
	if err != nil {
		return nil, fmt.Errorf("derive global config address: %w", err)
	}

	data, err := s.client.GetAccountData(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("get global config account: %w", err)
	}

	cfg, err := pumpswap.ParseGlobalConfig(data)
	if err != nil {
		s.logger.Error("failed to parse global config",
			zap.String("global_config", address.String()),
			zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

// Load fetches a pool account, the global config and both reserve token
// accounts, and returns them as one snapshot.
func (s *Service) Load(ctx context.Context, address solana.PublicKey) (*PoolSnapshot, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		pool *pumpswap.Pool
		size int
		cfg  *pumpswap.GlobalConfig
	)

	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() error {
		data, err := s.client.GetAccountData(gctx, address)
		if err != nil {
			return err
		}
		size = len(data)
		pool, err = pumpswap.ParsePool(address, data)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = s.GlobalConfig(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseReserve, quoteReserve, err := s.reserves(cctx, pool)
	if err != nil {
		return nil, err
	}

	return &PoolSnapshot{
		Pool:         pool,
		Config:       cfg,
		BaseReserve:  baseReserve,
		QuoteReserve: quoteReserve,
		DataSize:     size,
	}, nil
}

// LoadWithRetry retries Load with exponential backoff.
func (s *Service) LoadWithRetry(ctx context.Context, address solana.PublicKey) (*PoolSnapshot, error) {
	return withRetry(ctx, s, "load_pool", func() (*PoolSnapshot, error) {
		return s.Load(ctx, address)
	})
}

// CanonicalPool loads the index-zero WSOL pool a graduated token trades
// in, skipping the program account scan entirely.
func (s *Service) CanonicalPool(ctx context.Context, mint solana.PublicKey) (*PoolSnapshot, error) {
	address, _, err := pumpswap.DeriveCanonicalPoolAddress(mint)
	if err != nil {
		return nil, fmt.Errorf("derive canonical pool: %w", err)
	}
	return s.Load(ctx, address)
}

// FindPool searches for a pool holding the given mint pair, trying both
// orderings in parallel and keeping the first one with liquidity.
func (s *Service) FindPool(ctx context.Context, baseMint, quoteMint solana.PublicKey) (*PoolSnapshot, error) {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		found *PoolSnapshot
		mu    sync.Mutex
	)

	claim := func(snap *PoolSnapshot) {
		mu.Lock()
		if found == nil {
			found = snap
			cancel()
		}
		mu.Unlock()
	}

	g, _ := errgroup.WithContext(searchCtx)

	g.Go(func() error {
		if snap, _ := s.findByMints(searchCtx, baseMint, quoteMint); snap != nil {
			claim(snap)
		}
		return nil
	})
	g.Go(func() error {
		if snap, _ := s.findByMints(searchCtx, quoteMint, baseMint); snap != nil {
			claim(snap)
		}
		return nil
	})

	_ = g.Wait()

	if found == nil {
		return nil, fmt.Errorf("no pool found for %s / %s", baseMint, quoteMint)
	}
	return found, nil
}

// FindPoolWithRetry retries FindPool with exponential backoff.
func (s *Service) FindPoolWithRetry(ctx context.Context, baseMint, quoteMint solana.PublicKey) (*PoolSnapshot, error) {
	return withRetry(ctx, s, "find_pool", func() (*PoolSnapshot, error) {
		return s.FindPool(ctx, baseMint, quoteMint)
	})
}

// findByMints matches pool accounts on the mint fields at their known
// offsets and keeps the first candidate with nonzero reserves.
func (s *Service) findByMints(ctx context.Context, baseMint, quoteMint solana.PublicKey) (*PoolSnapshot, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filters := []rpc.RPCFilter{
		{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: pumpswap.PoolDiscriminator}},
		{Memcmp: &rpc.RPCFilterMemcmp{Offset: offsetBaseMint, Bytes: baseMint.Bytes()}},
		{Memcmp: &rpc.RPCFilterMemcmp{Offset: offsetQuoteMint, Bytes: quoteMint.Bytes()}},
	}

	accounts, err := s.client.GetProgramAccounts(cctx, s.programID, filters)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no pools match %s/%s", baseMint, quoteMint)
	}

	cfg, err := s.GlobalConfig(cctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		data := account.Account.Data.GetBinary()
		pool, err := pumpswap.ParsePool(account.Pubkey, data)
		if err != nil {
			s.logger.Debug("skipping unparsable pool candidate",
				zap.String("pool", account.Pubkey.String()),
				zap.Error(err))
			continue
		}

		baseReserve, quoteReserve, err := s.reserves(cctx, pool)
		if err != nil || baseReserve == 0 || quoteReserve == 0 {
			continue
		}

		return &PoolSnapshot{
			Pool:         pool,
			Config:       cfg,
			BaseReserve:  baseReserve,
			QuoteReserve: quoteReserve,
			DataSize:     len(data),
		}, nil
	}

	return nil, fmt.Errorf("all candidate pools have zero liquidity for %s/%s", baseMint, quoteMint)
}

// reserves fetches both pool token accounts in one request and extracts
// their balances.
func (s *Service) reserves(ctx context.Context, pool *pumpswap.Pool) (uint64, uint64, error) {
	data, err := s.client.GetMultipleAccountData(ctx, pool.PoolBaseTokenAccount, pool.PoolQuoteTokenAccount)
	if err != nil {
		return 0, 0, err
	}

	baseReserve, err := pumpswap.TokenAccountBalance(data[0])
	if err != nil {
		return 0, 0, fmt.Errorf("pool base token account %s: %w", pool.PoolBaseTokenAccount, err)
	}
	quoteReserve, err := pumpswap.TokenAccountBalance(data[1])
	if err != nil {
		return 0, 0, fmt.Errorf("pool quote token account %s: %w", pool.PoolQuoteTokenAccount, err)
	}
	return baseReserve, quoteReserve, nil
}

// withRetry runs operation under the service's exponential backoff
// policy, logging each retry.
func withRetry[T any](ctx context.Context, s *Service, name string, operation func() (T, error)) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryDelay
	policy.MaxInterval = s.retryDelay * 10

	notify := func(err error, wait time.Duration) {
		s.logger.Info("retrying after error",
			zap.String("operation", name),
			zap.Error(err),
			zap.Duration("backoff", wait))
	}

	tries := uint(s.maxRetries)
	if tries == 0 {
		tries = 1
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(notify))
}
