// Package pumpswap implements the client side of the pump.fun AMM
// program: constant-product swap and liquidity quoting, program-derived
// address resolution, instruction encoding and event-log decoding.
//
// Every function in this package is pure. Reserve balances and fee
// schedules are passed in as a PoolState snapshot, so callers decide how
// fresh their view of the chain has to be. RPC access lives in
// internal/chain.
package pumpswap
