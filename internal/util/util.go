package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// MillisID returns prefix followed by the current unix time in milliseconds.
func MillisID(prefix string) string {
	return prefix + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// HMACEqual compares two hex signatures byte for byte in constant time.
// Hex case matters: "AB" and "ab" are different signatures.
func HMACEqual(expected, got string) bool {
	return hmac.Equal([]byte(expected), []byte(got))
}
