package ecb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/wealth-tracker/internal/config"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrUnknownCurrency is returned for a currency the reference rates do not quote
var ErrUnknownCurrency = errors.New("unknown currency")

// cacheTTL is how long a fetched rate table is reused. The ECB publishes once per working day.
const cacheTTL = time.Hour

// Client fetches the euro foreign exchange reference rates published by the European Central Bank
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger

	mu        sync.Mutex
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// NewClient initializes a new ECB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.ECBURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// sendRequest downloads the daily reference rates document
func (c *Client) sendRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("ECB XML response: %d bytes", len(body))
	return body, nil
}

// parseXMLResponse extracts the currency/rate pairs. Rates are units of currency per euro.
func parseXMLResponse(rawBody []byte) (map[string]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := make(map[string]decimal.Decimal, len(cubes)+1)
	rates["EUR"] = decimal.NewFromInt(1)
	for _, cube := range cubes {
		currency := strings.ToUpper(cube.SelectAttrValue("currency", ""))
		rate, err := decimal.NewFromString(cube.SelectAttrValue("rate", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %w", currency, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s: %s", currency, rate)
		}
		rates[currency] = rate
	}
	return rates, nil
}

// Rates returns the latest reference rates, keyed by ISO currency code, with EUR at 1
func (c *Client) Rates(ctx context.Context) (map[string]decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rates != nil && time.Since(c.fetchedAt) < cacheTTL {
		return c.rates, nil
	}

	body, err := c.sendRequest(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := parseXMLResponse(body)
	if err != nil {
		return nil, err
	}

	c.rates = rates
	c.fetchedAt = time.Now()
	c.log.Infof("Retrieved %d ECB reference rates", len(rates))
	return rates, nil
}

// Rate returns how many units of to one unit of from is worth
func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rates, err := c.Rates(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	fromRate, ok := rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}
	return toRate.DivRound(fromRate, 8), nil
}
