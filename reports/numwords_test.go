package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := map[int64]string{
		0:         "Zero",
		1:         "One",
		13:        "Thirteen",
		20:        "Twenty",
		45:        "Forty Five",
		99:        "Ninety Nine",
		100:       "One Hundred",
		101:       "One Hundred One",
		999:       "Nine Hundred Ninety Nine",
		1000:      "One Thousand",
		1040:      "One Thousand Forty",
		99999:     "Ninety Nine Thousand Nine Hundred Ninety Nine",
		100000:    "One Lakh",
		123456:    "One Lakh Twenty Three Thousand Four Hundred Fifty Six",
		10000000:  "One Crore",
		25000000:  "Two Crore Fifty Lakh",
		123456789: "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine",
	}
	for n, want := range cases {
		assert.Equal(t, want, AmountInWords(n), "n=%d", n)
	}
}

func TestAmountInWordsNeverEmpty(t *testing.T) {
	for n := int64(0); n < 2000; n++ {
		assert.NotEmpty(t, AmountInWords(n), "n=%d", n)
	}
	for _, n := range []int64{99999, 100001, 9999999, 10000001, 123456789012} {
		assert.NotEmpty(t, AmountInWords(n))
	}
}
