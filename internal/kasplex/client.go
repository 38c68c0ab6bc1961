// Package kasplex speaks to the public indexer APIs the settlement engine
// depends on: the kasplex krc-20 indexer, the krc-721 collection indexer,
// the kaspa.org address explorer and the marketplace floor price feed.
package kasplex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/clock"
)

const (
	maxAttempts  = 5
	retryBackoff = 2 * time.Second

	requestTimeout = 30 * time.Second
)

// APIMetrics records metrics for indexer API calls.
type APIMetrics interface {
	Observe(operation string, err error, started time.Time)
}

// Config carries the indexer endpoints. Zero-value fields fall back to the
// public mainnet deployments.
type Config struct {
	KasplexURL  string `long:"kasplex-url" env:"KASPLEX_URL" default:"https://api.kasplex.org/v1" description:"kasplex krc-20 indexer base URL"`
	KRC721URL   string `long:"krc721-url" env:"KRC721_URL" default:"https://mainnet.krc721.stream/api/v1/krc721/mainnet" description:"krc-721 indexer base URL"`
	ExplorerURL string `long:"explorer-url" env:"EXPLORER_URL" default:"https://api.kaspa.org" description:"kaspa explorer base URL"`
	MarketURL   string `long:"market-url" env:"MARKET_URL" default:"https://api.kaspiano.com" description:"marketplace floor price base URL"`
}

// Client is a retrying JSON client over the indexer endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	apiMetrics APIMetrics
	backoff    time.Duration
}

// NewClient constructs an instrumented indexer client.
func NewClient(cfg Config, logger *zap.Logger, apiMetrics APIMetrics) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
		apiMetrics: apiMetrics,
		backoff:    retryBackoff,
	}
}

type tokenBalanceResponse struct {
	Result []struct {
		Balance string `json:"balance"`
	} `json:"result"`
}

// TokenBalance returns the krc-20 balance of the address in token base units.
func (c *Client) TokenBalance(ctx context.Context, address, ticker string) (balance uint64, err error) {
	started := time.Now()
	defer func() {
		c.apiMetrics.Observe("token_balance", err, started)
	}()

	url := fmt.Sprintf("%s/krc20/address/%s/token/%s", c.cfg.KasplexURL, address, ticker)
	var resp tokenBalanceResponse
	if err = c.getJSON(ctx, url, &resp); err != nil {
		return 0, fmt.Errorf("fetch %s balance for %s: %w", ticker, address, err)
	}
	if len(resp.Result) == 0 {
		return 0, nil
	}
	balance, err = strconv.ParseUint(resp.Result[0].Balance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s balance %q: %w", ticker, resp.Result[0].Balance, err)
	}
	return balance, nil
}

type nftHoldingsResponse struct {
	Result []struct {
		TokenID string `json:"tokenId"`
	} `json:"result"`
}

// NFTTokenIDs returns the token IDs of a krc-721 collection held by the
// address.
func (c *Client) NFTTokenIDs(ctx context.Context, address, collection string) (ids []uint64, err error) {
	started := time.Now()
	defer func() {
		c.apiMetrics.Observe("nft_token_ids", err, started)
	}()

	url := fmt.Sprintf("%s/address/%s/collection/%s", c.cfg.KRC721URL, address, collection)
	var resp nftHoldingsResponse
	if err = c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s holdings for %s: %w", collection, address, err)
	}
	ids = make([]uint64, 0, len(resp.Result))
	for _, item := range resp.Result {
		id, parseErr := strconv.ParseUint(item.TokenID, 10, 64)
		if parseErr != nil {
			c.logger.Warn("skipping unparseable nft token id",
				zap.String("collection", collection),
				zap.String("token_id", item.TokenID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type addressBalanceResponse struct {
	Balance uint64 `json:"balance"`
}

// AddressBalance returns the KAS balance of an address in sompi, as seen by
// the explorer. Used to watch P2SH commit addresses.
func (c *Client) AddressBalance(ctx context.Context, address string) (balance uint64, err error) {
	started := time.Now()
	defer func() {
		c.apiMetrics.Observe("address_balance", err, started)
	}()

	url := fmt.Sprintf("%s/addresses/%s/balance", c.cfg.ExplorerURL, address)
	var resp addressBalanceResponse
	if err = c.getJSON(ctx, url, &resp); err != nil {
		return 0, fmt.Errorf("fetch balance for %s: %w", address, err)
	}
	return resp.Balance, nil
}

type transactionCountResponse struct {
	Total uint64 `json:"total"`
}

// TransactionCount returns how many transactions touch the address.
func (c *Client) TransactionCount(ctx context.Context, address string) (count uint64, err error) {
	started := time.Now()
	defer func() {
		c.apiMetrics.Observe("transaction_count", err, started)
	}()

	url := fmt.Sprintf("%s/addresses/%s/transactions-count", c.cfg.ExplorerURL, address)
	var resp transactionCountResponse
	if err = c.getJSON(ctx, url, &resp); err != nil {
		return 0, fmt.Errorf("fetch transaction count for %s: %w", address, err)
	}
	return resp.Total, nil
}

type floorPriceResponse struct {
	FloorPrice float64 `json:"floor_price"`
}

// FloorPrice returns the marketplace floor price of the ticker in KAS per
// whole token.
func (c *Client) FloorPrice(ctx context.Context, ticker string) (price float64, err error) {
	started := time.Now()
	defer func() {
		c.apiMetrics.Observe("floor_price", err, started)
	}()

	url := fmt.Sprintf("%s/api/floor-price?ticker=%s", c.cfg.MarketURL, ticker)
	var resp floorPriceResponse
	if err = c.getJSON(ctx, url, &resp); err != nil {
		return 0, fmt.Errorf("fetch floor price for %s: %w", ticker, err)
	}
	if resp.FloorPrice <= 0 {
		return 0, fmt.Errorf("floor price for %s unavailable", ticker)
	}
	return resp.FloorPrice, nil
}

// getJSON performs a GET with linear backoff across transient upstream
// failures. The public indexers intermittently return 404 for data that is
// simply not indexed yet, so 404 retries like a server error.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := clock.SleepWithContext(ctx, time.Duration(attempt-1)*c.backoff); err != nil {
				return err
			}
		}

		body, status, err := c.doGet(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if isRetryableStatus(status) {
			lastErr = fmt.Errorf("upstream status %d", status)
			c.logger.Debug("retrying indexer request",
				zap.String("url", url),
				zap.Int("status", status),
				zap.Int("attempt", attempt))
			continue
		}
		if status != http.StatusOK {
			return fmt.Errorf("upstream status %d", status)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusNotFound,
		http.StatusUnprocessableEntity,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusNotImplemented:
		return true
	}
	return false
}
