package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		input    string
		expected Amount
		name     string
	}{
		{`5000`, 5000, "Number"},
		{`5000.4`, 5000, "Float rounds"},
		{`"5,000"`, 5000, "Comma string"},
		{`"18000"`, 18000, "Plain string"},
		{`""`, 0, "Empty string"},
		{`null`, 0, "Null"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.input), &a))
			assert.Equal(t, tc.expected, a)
		})
	}

	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}

func TestAmountMarshal(t *testing.T) {
	data, err := json.Marshal(Amount(5000))
	require.NoError(t, err)
	assert.Equal(t, "5000", string(data))
}

func TestAmountPaise(t *testing.T) {
	assert.Equal(t, int64(3420000), Amount(34200).Paise())
}

func TestPackageUnitPrice(t *testing.T) {
	p := &Package{OriginalPrice: 20000, OfferPrice: 18000}
	assert.Equal(t, Amount(18000), p.UnitPrice())
	assert.Equal(t, Amount(2000), p.Savings())

	noOffer := &Package{OriginalPrice: 20000}
	assert.Equal(t, Amount(20000), noOffer.UnitPrice())
	assert.Equal(t, Amount(0), noOffer.Savings())

	equal := &Package{OriginalPrice: 18000, OfferPrice: 18000}
	assert.Equal(t, Amount(0), equal.Savings())
}

func TestClassifyPaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusPaid, ClassifyPaymentStatus("captured"))
	assert.Equal(t, PaymentStatusPaid, ClassifyPaymentStatus("Paid"))
	assert.Equal(t, PaymentStatusFailed, ClassifyPaymentStatus("failed"))
	assert.Equal(t, PaymentStatusRefunded, ClassifyPaymentStatus("refunded"))
	assert.Equal(t, PaymentStatusPending, ClassifyPaymentStatus("created"))
	assert.Equal(t, PaymentStatusPending, ClassifyPaymentStatus(""))
}

func TestSessionIsAuthenticated(t *testing.T) {
	token := "tok"
	id := "cust-1"
	empty := ""

	assert.True(t, (&Session{AuthToken: &token, CustomerID: &id}).IsAuthenticated())
	assert.False(t, (&Session{AuthToken: &token}).IsAuthenticated())
	assert.False(t, (&Session{CustomerID: &id}).IsAuthenticated())
	assert.False(t, (&Session{AuthToken: &empty, CustomerID: &id}).IsAuthenticated())
	assert.False(t, (&Session{}).IsAuthenticated())
}

func TestCustomerEffectiveID(t *testing.T) {
	assert.Equal(t, "c1", (&Customer{CustomerID: "c1", ID: "m1"}).EffectiveID())
	assert.Equal(t, "m1", (&Customer{ID: "m1"}).EffectiveID())
	assert.Equal(t, "", (&Customer{}).EffectiveID())
}
