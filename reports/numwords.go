package reports

import "strings"

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a whole-rupee amount in Indian numbering:
// crore, lakh, thousand, hundred, then 0-99. Paise are not
// represented. Negative input renders its absolute value.
func AmountInWords(n int64) string {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return "Zero"
	}

	var parts []string
	peel := func(scale int64, label string) {
		if n >= scale {
			parts = append(parts, AmountInWords(n/scale), label)
			n %= scale
		}
	}

	peel(10000000, "Crore")
	peel(100000, "Lakh")
	peel(1000, "Thousand")
	peel(100, "Hundred")

	if n > 0 {
		if n < 20 {
			parts = append(parts, onesWords[n])
		} else {
			w := tensWords[n/10]
			if n%10 != 0 {
				w += " " + onesWords[n%10]
			}
			parts = append(parts, w)
		}
	}

	return strings.Join(parts, " ")
}
