package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns an alphanumeric string with length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)

	rngMu.Lock()
	defer rngMu.Unlock()

	buf := make([]byte, minLen+rng.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = alphanumeric[rng.Intn(len(alphanumeric))]
	}
	return string(buf)
}

// RandomEmail returns a lower-case address under example.com.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(6, 12)) + "@example.com"
}
