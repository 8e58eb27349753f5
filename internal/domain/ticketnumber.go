package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TicketNumber pairs the human-facing identifier with its sequence value.
type TicketNumber struct {
	TicketNumber string
	CountNumber  int
}

// ticketNumberPattern matches "T-" + YY + MM + 4-digit sequence.
var ticketNumberPattern = regexp.MustCompile(`^T-(\d{2})(\d{2})(\d{4})$`)

// PeriodPrefix returns the year-month scope prefix for a creation time,
// e.g. March 2025 yields "T-2503".
func PeriodPrefix(t time.Time) string {
	return fmt.Sprintf("T-%02d%02d", t.Year()%100, int(t.Month()))
}

// FormatTicketNumber renders a sequence value under a period prefix,
// zero-padding the counter to four digits.
func FormatTicketNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// ParseTicketNumber splits a ticket number into its period prefix and
// sequence value. It returns an error when the format does not match.
func ParseTicketNumber(number string) (prefix string, seq int, err error) {
	match := ticketNumberPattern.FindStringSubmatch(number)
	if match == nil {
		return "", 0, fmt.Errorf("malformed ticket number %q", number)
	}
	seq, err = strconv.Atoi(match[3])
	if err != nil {
		return "", 0, err
	}
	return "T-" + match[1] + match[2], seq, nil
}
