// Package uphold implements the custodial payout path. Instead of spending
// treasury UTXOs directly, payouts are issued from an Uphold card via the
// partner API using the OAuth client-credentials flow.
package uphold

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const (
	requestTimeout = 30 * time.Second

	// Tokens are refreshed slightly before their reported expiry.
	tokenExpirySlack = 60 * time.Second
)

// Config carries the Uphold API credentials and card to pay from.
type Config struct {
	BaseURL      string `long:"uphold-url" env:"UPHOLD_URL" default:"https://api.uphold.com" description:"Uphold API base URL"`
	ClientID     string `long:"uphold-client-id" env:"UPHOLD_CLIENT_ID" description:"Uphold OAuth client id"`
	ClientSecret string `long:"uphold-client-secret" env:"UPHOLD_CLIENT_SECRET" description:"Uphold OAuth client secret"`
	CardID       string `long:"uphold-card-id" env:"UPHOLD_CARD_ID" description:"Uphold card to pay from"`
}

// Enabled reports whether the custodial path is configured at all.
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.CardID != ""
}

// Client issues KAS payouts through the Uphold partner API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger

	token       string
	tokenExpiry time.Time
}

// NewClient constructs an Uphold client. The token is fetched lazily on the
// first payout.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpirySlack)
	return c.token, nil
}

type transactionRequest struct {
	Denomination denomination `json:"denomination"`
	Destination  string       `json:"destination"`
}

type denomination struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type transactionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SendKAS creates and commits a card transaction paying amount sompi of KAS
// to the destination address. Returns the Uphold transaction id.
func (c *Client) SendKAS(ctx context.Context, destination string, amount uint64) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(transactionRequest{
		Denomination: denomination{Amount: formatKAS(amount), Currency: "KAS"},
		Destination:  destination,
	})
	if err != nil {
		return "", fmt.Errorf("encode transaction request: %w", err)
	}

	url := fmt.Sprintf("%s/v0/me/cards/%s/transactions?commit=true", c.cfg.BaseURL, c.cfg.CardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build transaction request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transaction response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// Expired tokens surface as 401; drop the cache so the next cycle
		// re-authenticates instead of failing forever.
		if resp.StatusCode == http.StatusUnauthorized {
			c.token = ""
		}
		return "", fmt.Errorf("transaction endpoint status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var tx transactionResponse
	if err := json.Unmarshal(body, &tx); err != nil {
		return "", fmt.Errorf("decode transaction response: %w", err)
	}

	c.logger.Info("custodial payout committed",
		zap.String("destination", destination),
		zap.Uint64("sompi", amount),
		zap.String("uphold_tx", tx.ID),
		zap.String("status", tx.Status))
	return tx.ID, nil
}

// formatKAS renders sompi as a decimal KAS amount without float rounding.
func formatKAS(sompi uint64) string {
	whole := sompi / model.SompiPerKas
	frac := sompi % model.SompiPerKas
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	s := fmt.Sprintf("%d.%08d", whole, frac)
	return strings.TrimRight(s, "0")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
