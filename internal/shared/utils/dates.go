package utils

import (
	"fmt"
	"time"
)

// Portuguese month abbreviations, indexed by time.Month.
var ptMonths = [...]string{
	"", "Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// FormatDisplayDate renders a timestamp the way the read views show it,
// e.g. "24 Out, 2024". Storage always keeps the absolute timestamp; this is
// applied only at the read boundary.
func FormatDisplayDate(t time.Time) string {
	return fmt.Sprintf("%02d %s, %d", t.Day(), ptMonths[t.Month()], t.Year())
}
