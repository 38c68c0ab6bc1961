package kaspa

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaspanet/kaspad/app/appmessage"
	"github.com/kaspanet/kaspad/infrastructure/network/rpcclient"
)

type (
	// RPCMetrics records metrics for node RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client wraps the kaspad RPC client with metrics instrumentation and the
// treasury signing key. All blockchain access of the settlement engine goes
// through this adapter.
type Client struct {
	rpc        *rpcclient.RPCClient
	signer     *Signer
	rpcMetrics RPCMetrics

	mu   sync.Mutex
	subs map[string]*subscription
}

// subscription gates notification dispatch for one registered address set.
// The node RPC offers no unregister call, so cancellation happens here: a
// stopped subscription swallows everything the node still streams for it.
type subscription struct {
	stopped atomic.Bool
}

// NewClient connects to a kaspad node and wires the treasury signer.
func NewClient(rpcAddress string, signer *Signer, rpcMetrics RPCMetrics) (*Client, error) {
	rpc, err := rpcclient.NewRPCClient(rpcAddress)
	if err != nil {
		return nil, fmt.Errorf("connect kaspad rpc %s: %w", rpcAddress, err)
	}
	return &Client{rpc: rpc, signer: signer, rpcMetrics: rpcMetrics}, nil
}

// Close shuts down the underlying RPC connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

// TreasuryAddress returns the address of the signing key.
func (c *Client) TreasuryAddress() string {
	return c.signer.Address()
}

// TreasuryPublicKey returns the x-only public key of the signing key, used to
// build inscription envelopes it can later redeem.
func (c *Client) TreasuryPublicKey() []byte {
	return c.signer.PublicKey()
}

// ServerInfo reports node sync and UTXO-index readiness.
func (c *Client) ServerInfo(_ context.Context) (info ServerInfo, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("get_info", err, started)
	}()

	resp, err := c.rpc.GetInfo()
	if err != nil {
		return ServerInfo{}, fmt.Errorf("get info: %w", err)
	}
	return ServerInfo{
		ServerVersion: resp.ServerVersion,
		IsSynced:      resp.IsSynced,
		HasUTXOIndex:  resp.IsUtxoIndexed,
	}, nil
}

// UTXOsByAddress returns the full UTXO set of one address.
func (c *Client) UTXOsByAddress(_ context.Context, address string) (entries []UTXOEntry, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("get_utxos_by_addresses", err, started)
	}()

	resp, err := c.rpc.GetUTXOsByAddresses([]string{address})
	if err != nil {
		return nil, fmt.Errorf("get utxos for %s: %w", address, err)
	}
	return entriesFromRPC(resp.Entries)
}

// VirtualDAAScore returns the DAG's current virtual DAA score.
func (c *Client) VirtualDAAScore(_ context.Context) (score uint64, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("get_block_dag_info", err, started)
	}()

	resp, err := c.rpc.GetBlockDAGInfo()
	if err != nil {
		return 0, fmt.Errorf("get block dag info: %w", err)
	}
	return resp.VirtualDAAScore, nil
}

// FeeEstimate returns the node's priority feerate estimate in sompi/gram.
func (c *Client) FeeEstimate(_ context.Context) (feerate float64, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("get_fee_estimate", err, started)
	}()

	resp, err := c.rpc.GetFeeEstimate()
	if err != nil {
		return 0, fmt.Errorf("get fee estimate: %w", err)
	}
	return resp.Estimate.PriorityBucket.Feerate, nil
}

// SubmitTransaction submits a signed transaction and returns its id.
func (c *Client) SubmitTransaction(_ context.Context, tx *PendingTransaction) (txID string, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("submit_transaction", err, started)
	}()

	rpcTx := appmessage.DomainTransactionToRPCTransaction(tx.tx)
	resp, err := c.rpc.SubmitTransaction(rpcTx, tx.ID, false)
	if err != nil {
		return "", fmt.Errorf("submit transaction %s: %w", tx.ID, err)
	}
	return resp.TransactionID, nil
}

// SubscribeUTXOsChanged registers a change handler for the given addresses.
func (c *Client) SubscribeUTXOsChanged(addresses []string, onChange func(UTXOChange)) (err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("subscribe_utxos_changed", err, started)
	}()

	sub := &subscription{}
	c.mu.Lock()
	if c.subs == nil {
		c.subs = make(map[string]*subscription)
	}
	c.subs[subscriptionKey(addresses)] = sub
	c.mu.Unlock()

	return c.rpc.RegisterForUTXOsChangedNotifications(addresses, func(notification *appmessage.UTXOsChangedNotificationMessage) {
		if sub.stopped.Load() {
			return
		}
		added, addErr := entriesFromRPC(notification.Added)
		removed, remErr := entriesFromRPC(notification.Removed)
		if addErr != nil || remErr != nil {
			// Malformed entries in a notification are dropped; the polling
			// fallback covers missed signals.
			return
		}
		onChange(UTXOChange{Added: added, Removed: removed})
	})
}

// UnsubscribeUTXOsChanged stops dispatching change notifications for the
// addresses. The node keeps streaming them for the connection's lifetime;
// they are discarded at this adapter.
func (c *Client) UnsubscribeUTXOsChanged(addresses []string) (err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("unsubscribe_utxos_changed", err, started)
	}()

	key := subscriptionKey(addresses)
	c.mu.Lock()
	defer c.mu.Unlock()
	sub, ok := c.subs[key]
	if !ok {
		return fmt.Errorf("no utxo subscription for %s", key)
	}
	sub.stopped.Store(true)
	delete(c.subs, key)
	return nil
}

func subscriptionKey(addresses []string) string {
	return strings.Join(addresses, ",")
}
