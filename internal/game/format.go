package game

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCash renders a dollar amount with thousands separators, e.g. "$1,250"
// or "-$40".
func FormatCash(n int) string {
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}
