package services

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultDays is substituted by the caller when the days parameter is
// absent from the request. A present-but-empty value is not defaulted; it
// fails the integer parse like any other bad input.
const DefaultDays = "7"

const (
	minDays      = 1
	maxDays      = 30
	maxTickerLen = 10
)

// ValidateRequest normalizes the raw query parameters into a usable
// (ticker, days) pair. The ticker is trimmed and upper-cased. Pure
// function, no side effects.
func ValidateRequest(rawTicker, rawDays string) (string, int, error) {
	ticker := strings.ToUpper(strings.TrimSpace(rawTicker))
	if ticker == "" {
		return "", 0, ErrTickerRequired
	}

	days, err := strconv.Atoi(rawDays)
	if err != nil {
		return "", 0, ErrDaysFormat
	}
	if days < minDays || days > maxDays {
		return "", 0, ErrDaysRange
	}

	if !isAlnum(ticker) || utf8.RuneCountInString(ticker) > maxTickerLen {
		return "", 0, ErrInvalidTicker
	}

	return ticker, days, nil
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
