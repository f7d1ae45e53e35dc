// internal/chain/client.go
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// ErrAccountNotFound is returned when the RPC node has no account at the
// requested address.
var ErrAccountNotFound = errors.New("account not found")

// Client is a thin adapter around the solana-go RPC client. It pins one
// commitment level for every read and logs failures.
type Client struct {
	rpc        *rpc.Client
	logger     *zap.Logger
	commitment rpc.CommitmentType
}

// NewClient builds a client for the given RPC endpoint.
func NewClient(rpcURL string, commitment rpc.CommitmentType, logger *zap.Logger) *Client {
	return &Client{
		rpc:        rpc.New(rpcURL),
		logger:     logger.Named("chain"),
		commitment: commitment,
	}
}

// Commitment maps a configuration string onto an RPC commitment level.
// Unknown values fall back to confirmed.
func Commitment(name string) rpc.CommitmentType {
	switch name {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// GetAccountData returns the raw binary contents of a single account.
func (c *Client) GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	result, err := c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, pubkey)
		}
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, fmt.Errorf("get account info for %s: %w", pubkey, err)
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, pubkey)
	}
	return result.Value.Data.GetBinary(), nil
}

// GetMultipleAccountData returns the raw contents of several accounts in
// one request. Missing accounts yield nil entries.
func (c *Client) GetMultipleAccountData(ctx context.Context, pubkeys ...solana.PublicKey) ([][]byte, error) {
	if len(pubkeys) == 0 {
		return nil, nil
	}

	result, err := c.rpc.GetMultipleAccountsWithOpts(ctx, pubkeys, &rpc.GetMultipleAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		c.logger.Debug("GetMultipleAccounts error", zap.Error(err))
		return nil, fmt.Errorf("get multiple accounts: %w", err)
	}

	data := make([][]byte, len(pubkeys))
	for i, info := range result.Value {
		if info != nil {
			data[i] = info.Data.GetBinary()
		}
	}
	return data, nil
}

// GetProgramAccounts returns every account owned by programID that
// matches the given filters, with its data.
func (c *Client) GetProgramAccounts(ctx context.Context, programID solana.PublicKey, filters []rpc.RPCFilter) (rpc.GetProgramAccountsResult, error) {
	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, programID, &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters:    filters,
	})
	if err != nil {
		c.logger.Debug("GetProgramAccounts error",
			zap.String("program_id", programID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("get program accounts: %w", err)
	}
	return accounts, nil
}
