package report

import (
	"strings"
)

var (
	unitWords = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tenWords = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
)

// AmountToWords переводит сумму в рупиях в текст по индийской системе (лакх, крор)
func AmountToWords(amount int64) string {
	if amount == 0 {
		return "Zero Rupees"
	}

	var prefix string
	n := uint64(amount)
	if amount < 0 {
		prefix = "Minus "
		n = uint64(-(amount + 1)) + 1
	}

	word := "Rupees"
	if n == 1 {
		word = "Rupee"
	}
	return prefix + numberToWords(n) + " " + word
}

// numberToWords: крор повторяется, если сумма больше 99 крор
func numberToWords(n uint64) string {
	var parts []string

	if n >= 10000000 {
		parts = append(parts, numberToWords(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, hundredsToWords(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, hundredsToWords(n/1000)+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, hundredsToWords(n))
	}

	return strings.Join(parts, " ")
}

// hundredsToWords конвертирует число от 1 до 999
func hundredsToWords(n uint64) string {
	var parts []string

	if n >= 100 {
		parts = append(parts, unitWords[n/100], "Hundred")
		n %= 100
	}

	if n >= 20 {
		parts = append(parts, tenWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, unitWords[n])
	}

	return strings.Join(parts, " ")
}
