package report

import (
	"strconv"
	"strings"
)

// FormatIndian форматирует целое по индийской системе разрядов:
// последние три цифры, затем группы по две (5,00,000 и 1,23,45,678)
func FormatIndian(n int64) string {
	sign := ""
	// -n переполняется для MinInt64, поэтому работаем со строкой
	str := strconv.FormatInt(n, 10)
	if strings.HasPrefix(str, "-") {
		sign = "-"
		str = str[1:]
	}

	if len(str) <= 3 {
		return sign + str
	}

	head, tail := str[:len(str)-3], str[len(str)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return sign + strings.Join(groups, ",") + "," + tail
}

// FormatRupees - сумма со знаком рупии
func FormatRupees(n int64) string {
	return "₹" + FormatIndian(n)
}

// latin1 заменяет знак рупии и выбрасывает символы вне Latin-1.
// Нужен для встроенного шрифта Helvetica, который не знает Unicode.
func latin1(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs. ")
	var sb strings.Builder
	for _, r := range s {
		if r < 0x100 {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
