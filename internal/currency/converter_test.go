package currency

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(ratesURL string) *Converter {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewConverter(ratesURL, logger)
}

func TestConvert_FallbackRates(t *testing.T) {
	converter := newTestConverter("")

	tests := []struct {
		code     string
		expected float64
	}{
		{"INR", 100000},
		{"USD", 1200},
		{"EUR", 1100},
		{"GBP", 950},
		{"AUD", 1800},
		{"CAD", 1600},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			converted, err := converter.Convert(100000, tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, converted)
		})
	}
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	converter := newTestConverter("")

	_, err := converter.Convert(5000, "JPY")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestConvert_LowercaseCode(t *testing.T) {
	converter := newTestConverter("")

	converted, err := converter.Convert(1000, "usd")
	require.NoError(t, err)
	assert.Equal(t, 12.0, converted)
}

func TestFormat(t *testing.T) {
	converter := newTestConverter("")

	formatted, err := converter.Format(100000, "INR")
	require.NoError(t, err)
	assert.Equal(t, "₹1,00,000", formatted)

	formatted, err = converter.Format(100000, "USD")
	require.NoError(t, err)
	assert.Equal(t, "$1200.00", formatted)

	_, err = converter.Format(100000, "JPY")
	assert.Error(t, err)
}

func TestRefreshRates_LiveRatesApplied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"INR","rates":{"USD":0.013,"EUR":0.012,"JPY":1.8}}`))
	}))
	defer server.Close()

	converter := newTestConverter(server.URL)
	require.NoError(t, converter.RefreshRates(context.Background()))

	converted, err := converter.Convert(1000, "USD")
	require.NoError(t, err)
	assert.Equal(t, 13.0, converted)

	// GBP was absent from the live payload, fallback stays
	converted, err = converter.Convert(1000, "GBP")
	require.NoError(t, err)
	assert.Equal(t, 9.5, converted)

	// JPY never becomes supported just because the feed carries it
	_, err = converter.Convert(1000, "JPY")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestRefreshRates_FailureKeepsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	converter := newTestConverter(server.URL)
	assert.Error(t, converter.RefreshRates(context.Background()))

	converted, err := converter.Convert(1000, "USD")
	require.NoError(t, err)
	assert.Equal(t, 12.0, converted)
}

func TestRefreshRates_NoURLIsNoop(t *testing.T) {
	converter := newTestConverter("")
	assert.NoError(t, converter.RefreshRates(context.Background()))
}

func TestSupportedAndSymbols(t *testing.T) {
	assert.Equal(t, []string{"INR", "USD", "EUR", "GBP", "AUD", "CAD"}, Supported())
	assert.True(t, IsSupported("usd"))
	assert.False(t, IsSupported("JPY"))
	assert.Equal(t, "₹", Symbol("INR"))
	assert.Equal(t, "A$", Symbol("aud"))
	assert.Equal(t, "₹", Symbol("XYZ"))
}
