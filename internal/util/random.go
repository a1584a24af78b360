package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

	// ECPay chỉ chấp nhận MerchantTradeNo tối đa 20 ký tự chữ và số.
	tradeNoMaxLength = 20
)

// GenerateTradeNo generates a merchant trade number in the format "EC" + yymmddHHMMSS + random suffix.
func GenerateTradeNo(now time.Time) string {
	prefix := "EC" + now.Format("060102150405")
	suffix := strings.ToUpper(shortuuid.NewWithAlphabet(alphabet))

	return (prefix + suffix)[:tradeNoMaxLength]
}

// GenerateSelectionID returns the random part of a store selection token.
func GenerateSelectionID() string {
	return shortuuid.New()
}

// ScopeKey builds a redis key of the form "prefix:identifier".
func ScopeKey(prefix, identifier string) string {
	return fmt.Sprintf("%s:%s", prefix, identifier)
}
