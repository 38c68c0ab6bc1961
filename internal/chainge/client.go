// Package chainge speaks to the Chainge cross-chain aggregator used to swap
// treasury KAS into the krc-20 rebate token. Orders are authenticated with a
// schnorr signature over a canonical string of the order fields.
package chainge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	requestTimeout = 30 * time.Second

	// Orders are tagged with the integration channel they came from.
	channel = "knot"

	fromTicker = "KAS"
	chainName  = "KAS"
)

// MessageSigner signs aggregator order payloads with the treasury key.
type MessageSigner interface {
	Address() string
	PublicKeyHex() string
	SignMessage(message []byte) (string, error)
}

// Config carries the aggregator endpoint and swap parameters.
type Config struct {
	BaseURL  string `long:"chainge-url" env:"CHAINGE_URL" default:"https://api2.chainge.finance" description:"swap aggregator base URL"`
	ToTicker string `long:"swap-to-ticker" env:"SWAP_TO_TICKER" default:"NACHO" description:"target krc-20 ticker"`
	Slippage string `long:"swap-slippage" env:"SWAP_SLIPPAGE" default:"5" description:"slippage tolerance in percent"`
}

// Quote is the aggregator's priced offer for one swap.
type Quote struct {
	FromAmount uint64
	// AmountOut net of service and gas fees, in token base units.
	AmountOut uint64
	// AmountOutMin applies the slippage tolerance to AmountOut.
	AmountOutMin uint64
}

// Order identifies a funded swap for submission: the on-chain transaction
// paying the vault, plus the quoted amounts.
type Order struct {
	TxHash string
	Quote  Quote
}

// SwapStatus is the polled state of a submitted order.
type SwapStatus struct {
	Succeeded bool
	// Hash of the aggregator's token delivery transaction, set once
	// Succeeded.
	Hash string
}

// Client is a JSON client over the aggregator endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
	signer     MessageSigner
	logger     *zap.Logger
}

// NewClient constructs an aggregator client signing with the treasury key.
func NewClient(cfg Config, signer MessageSigner, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		signer:     signer,
		logger:     logger,
	}
}

type quoteResponse struct {
	Code int `json:"code"`
	Data struct {
		AmountOut  string `json:"amountOut"`
		ServiceFee string `json:"serviceFee"`
		GasFee     string `json:"gasFee"`
		Slippage   string `json:"slippage"`
	} `json:"data"`
}

// Quote prices a KAS to token swap. A zero quote means the aggregator cannot
// serve the pair right now; callers skip the swap for this cycle.
func (c *Client) Quote(ctx context.Context, fromAmount uint64) (Quote, error) {
	url := fmt.Sprintf("%s/fun/quote?fromTicker=%s&toTicker=%s&fromAmount=%d",
		c.cfg.BaseURL, fromTicker, c.cfg.ToTicker, fromAmount)

	var resp quoteResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return Quote{}, fmt.Errorf("fetch quote: %w", err)
	}
	if resp.Code != 0 {
		return Quote{FromAmount: fromAmount}, nil
	}

	amountOut, err := strconv.ParseUint(resp.Data.AmountOut, 10, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parse amountOut %q: %w", resp.Data.AmountOut, err)
	}
	serviceFee, err := strconv.ParseUint(resp.Data.ServiceFee, 10, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parse serviceFee %q: %w", resp.Data.ServiceFee, err)
	}
	gasFee, err := strconv.ParseUint(resp.Data.GasFee, 10, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parse gasFee %q: %w", resp.Data.GasFee, err)
	}

	if amountOut <= serviceFee+gasFee {
		return Quote{}, fmt.Errorf("quote of %d cannot cover fees of %d", amountOut, serviceFee+gasFee)
	}
	receive := amountOut - serviceFee - gasFee

	slippage := c.cfg.Slippage
	if slippage == "" {
		slippage = strings.TrimSuffix(resp.Data.Slippage, "%")
	}
	minOut, err := applySlippage(receive, slippage)
	if err != nil {
		return Quote{}, err
	}

	return Quote{FromAmount: fromAmount, AmountOut: receive, AmountOutMin: minOut}, nil
}

type vaultResponse struct {
	Data struct {
		Vault string `json:"vault"`
	} `json:"data"`
}

// VaultAddress returns the aggregator's KAS deposit address.
func (c *Client) VaultAddress(ctx context.Context) (string, error) {
	var resp vaultResponse
	if err := c.getJSON(ctx, c.cfg.BaseURL+"/fun/getVault?ticker=KAS", &resp); err != nil {
		return "", fmt.Errorf("fetch vault address: %w", err)
	}
	if resp.Data.Vault == "" {
		return "", fmt.Errorf("aggregator returned empty vault address")
	}
	return resp.Data.Vault, nil
}

type submitSwapRequest struct {
	FromTicker  string `json:"fromTicker"`
	FromAmount  string `json:"fromAmount"`
	ToTicker    string `json:"toTicker"`
	ToAmount    string `json:"toAmount"`
	ToAmountMin string `json:"toAmountMin"`
	CertHash    string `json:"certHash"`
	Channel     string `json:"channel"`
}

type submitSwapResponse struct {
	Msg  string `json:"msg"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// SubmitSwap registers the funded order with the aggregator and returns the
// order id to poll.
func (c *Client) SubmitSwap(ctx context.Context, order Order) (string, error) {
	req := submitSwapRequest{
		FromTicker:  fromTicker,
		FromAmount:  strconv.FormatUint(order.Quote.FromAmount, 10),
		ToTicker:    c.cfg.ToTicker,
		ToAmount:    strconv.FormatUint(order.Quote.AmountOut, 10),
		ToAmountMin: strconv.FormatUint(order.Quote.AmountOutMin, 10),
		CertHash:    order.TxHash,
		Channel:     channel,
	}

	raw := fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s",
		req.Channel, req.CertHash, req.FromTicker, req.FromAmount, req.ToTicker, req.ToAmount, req.ToAmountMin)
	signature, err := c.signer.SignMessage([]byte(raw))
	if err != nil {
		return "", fmt.Errorf("sign swap order: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode swap order: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/fun/submitSwap", strings.NewReader(string(payload)))
	if err != nil {
		return "", fmt.Errorf("build swap request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Address", c.signer.Address())
	httpReq.Header.Set("PublicKey", c.signer.PublicKeyHex())
	httpReq.Header.Set("Chain", chainName)
	httpReq.Header.Set("Signature", signature)

	body, err := c.do(httpReq)
	if err != nil {
		return "", fmt.Errorf("submit swap: %w", err)
	}

	var resp submitSwapResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode swap response: %w", err)
	}
	if resp.Msg != "success" {
		return "", fmt.Errorf("aggregator rejected order: %s", resp.Msg)
	}
	return resp.Data.ID, nil
}

type checkSwapResponse struct {
	Data struct {
		Status string `json:"status"`
		Hash   string `json:"hash"`
	} `json:"data"`
}

// CheckSwap polls an order's state.
func (c *Client) CheckSwap(ctx context.Context, orderID string) (SwapStatus, error) {
	var resp checkSwapResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/fun/checkSwap?id=%s", c.cfg.BaseURL, orderID), &resp); err != nil {
		return SwapStatus{}, fmt.Errorf("check swap %s: %w", orderID, err)
	}
	return SwapStatus{
		Succeeded: resp.Data.Status == "Succeeded",
		Hash:      resp.Data.Hash,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator status %d", resp.StatusCode)
	}
	return body, nil
}

// applySlippage computes amount * (1 - slippagePercent/100) rounded down,
// in integer arithmetic to avoid float drift on large amounts.
func applySlippage(amount uint64, slippagePercent string) (uint64, error) {
	percent, err := strconv.ParseUint(strings.TrimSpace(slippagePercent), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse slippage %q: %w", slippagePercent, err)
	}
	if percent >= 100 {
		return 0, fmt.Errorf("slippage %d%% out of range", percent)
	}
	result := new(big.Int).SetUint64(amount)
	result.Mul(result, big.NewInt(int64(100-percent)))
	result.Div(result, big.NewInt(100))
	return result.Uint64(), nil
}
