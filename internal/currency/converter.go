// Package currency converts INR prices into a visitor's display
// currency. Conversion is presentation only; every payment amount sent
// upstream stays in INR.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/utils"
)

// DefaultRatesURL serves INR-based rates on its free tier
const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest/INR"

// ErrUnsupportedCurrency is returned for a currency code outside the
// supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Supported display currencies, INR first
var supportedCurrencies = []string{"INR", "USD", "EUR", "GBP", "AUD", "CAD"}

// fallbackRates are used until a live fetch succeeds
var fallbackRates = map[string]float64{
	"INR": 1,
	"USD": 0.012,
	"EUR": 0.011,
	"GBP": 0.0095,
	"AUD": 0.018,
	"CAD": 0.016,
}

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AUD": "A$",
	"CAD": "C$",
}

// Converter holds the current INR exchange rates
type Converter struct {
	mu         sync.RWMutex
	rates      map[string]float64
	ratesURL   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewConverter creates a converter seeded with the static fallback
// rates. ratesURL may be empty to disable live refresh.
func NewConverter(ratesURL string, logger *logrus.Logger) *Converter {
	rates := make(map[string]float64, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = rate
	}
	return &Converter{
		rates:      rates,
		ratesURL:   ratesURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Supported returns the display currency codes in menu order
func Supported() []string {
	out := make([]string, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupported reports whether code is a known display currency
func IsSupported(code string) bool {
	_, ok := fallbackRates[strings.ToUpper(code)]
	return ok
}

// Symbol returns the display symbol for a currency code
func Symbol(code string) string {
	if symbol, ok := symbols[strings.ToUpper(code)]; ok {
		return symbol
	}
	return symbols["INR"]
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// RefreshRates fetches live INR rates. On any failure the previous
// rates stay in effect.
func (c *Converter) RefreshRates(ctx context.Context) error {
	if c.ratesURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ratesURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Live exchange rates unavailable, using fallback rates")
		return fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Live exchange rates unavailable, using fallback rates")
		return fmt.Errorf("exchange rate service returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode exchange rates: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, code := range supportedCurrencies {
		if code == "INR" {
			continue
		}
		if rate, ok := payload.Rates[code]; ok && rate > 0 {
			c.rates[code] = rate
		}
	}

	c.logger.Info("Live exchange rates loaded")
	return nil
}

// Convert converts an INR amount into the target currency, rounded to
// two decimal places.
func (c *Converter) Convert(amount models.Amount, code string) (float64, error) {
	code = strings.ToUpper(code)

	c.mu.RLock()
	rate, ok := c.rates[code]
	c.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}

	return math.Round(float64(amount)*rate*100) / 100, nil
}

// Format renders an INR amount in the target currency with its symbol.
// INR keeps the Indian digit grouping; other currencies use a plain
// two-decimal rendering.
func (c *Converter) Format(amount models.Amount, code string) (string, error) {
	code = strings.ToUpper(code)
	if code == "INR" {
		return utils.FormatRupees(int64(amount)), nil
	}

	converted, err := c.Convert(amount, code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%.2f", Symbol(code), converted), nil
}
