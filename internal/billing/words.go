package billing

import (
	"math"
	"strings"
)

var wordUnits = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
	"Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
var wordTens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

func convertHundred(n int) string {
	var sb strings.Builder
	if n > 99 {
		sb.WriteString(wordUnits[n/100] + " Hundred ")
		n %= 100
	}
	if n > 0 {
		if n < 20 {
			sb.WriteString(wordUnits[n] + " ")
		} else {
			sb.WriteString(wordTens[n/10] + " ")
			if n%10 > 0 {
				sb.WriteString(wordUnits[n%10] + " ")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// spellWhole segments a number into crores, lakhs and thousands. The
// crore segment recurses so amounts beyond 999 crore still spell out
// ("Two Thousand Crore") instead of overrunning the word tables.
func spellWhole(n int) string {
	var parts []string
	if n >= 10000000 {
		parts = append(parts, spellWhole(n/10000000), "Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, convertHundred(n/100000), "Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, convertHundred(n/1000), "Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, convertHundred(n))
	}
	return strings.Join(parts, " ")
}

// AmountInWords spells out a rupee amount in the Indian numbering system
// (crores, lakhs, thousands) for the invoice footer.
func AmountInWords(amount float64) string {
	if amount < 0 || math.IsNaN(amount) {
		return "Zero"
	}

	rounded := math.Round(amount*100) / 100
	whole := int(math.Floor(rounded))
	paise := int(math.Round((rounded - float64(whole)) * 100))

	words := "Zero"
	if whole > 0 {
		words = spellWhole(whole)
	}
	if paise > 0 {
		words += " and " + convertHundred(paise) + " Paise"
	}
	return strings.Join(strings.Fields(words), " ")
}
