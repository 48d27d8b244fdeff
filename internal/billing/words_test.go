package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := map[float64]string{
		0:        "Zero",
		7:        "Seven",
		42:       "Forty Two",
		119:      "One Hundred Nineteen",
		2400:     "Two Thousand Four Hundred",
		144000:   "One Lakh Forty Four Thousand",
		195500:   "One Lakh Ninety Five Thousand Five Hundred",
		10000000: "One Crore",
		12345678: "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight",
	}
	for amount, want := range cases {
		assert.Equal(t, want, AmountInWords(amount), "amount %v", amount)
	}
}

// Crore counts past 999 keep spelling out instead of overrunning the
// word tables.
func TestAmountInWordsLargeAmounts(t *testing.T) {
	assert.Equal(t, "Two Thousand Crore", AmountInWords(20000000000))
	assert.Equal(t,
		"Two Thousand One Hundred Twenty Three Crore Forty Five Lakh Sixty Seven Thousand Eight Hundred Ninety",
		AmountInWords(21234567890))
}

func TestAmountInWordsPaise(t *testing.T) {
	assert.Equal(t, "Ninety Nine and Fifty Paise", AmountInWords(99.50))
	assert.Equal(t, "Zero", AmountInWords(-5))
}
