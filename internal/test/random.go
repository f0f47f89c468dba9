package test

import (
	"math/rand"
	"sync"
	"time"
)

const asciiAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// RandomASCIIString returns a pseudo-random alphanumeric string whose length
// falls within [minLen, maxLen]. Bounds are clamped so the result is never empty.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	buf := make([]byte, minLen+randIntn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = asciiAlphabet[randIntn(len(asciiAlphabet))]
	}
	return string(buf)
}

// RandomJordanPhone returns a Jordanian mobile number in the local 07XXXXXXXX
// format that customer upsert accepts and normalizes.
func RandomJordanPhone() string {
	buf := []byte("07")
	buf = append(buf, byte('7'+randIntn(3)))
	for i := 0; i < 7; i++ {
		buf = append(buf, byte('0'+randIntn(10)))
	}
	return string(buf)
}
