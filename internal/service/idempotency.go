package service

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// TokenIndex is a fast membership filter over submission tokens. A negative
// answer is definite, so the common case (a brand-new token) skips the store
// lookup entirely; a positive answer is only a hint and must be confirmed
// against the store.
type TokenIndex struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewTokenIndex sizes the filter for the expected number of tokens at a
// 0.1% false-positive rate.
func NewTokenIndex(expectedTokens uint) *TokenIndex {
	return &TokenIndex{
		filter: bloom.NewWithEstimates(expectedTokens, 0.001),
	}
}

// MaybeSeen reports whether the token might have been accepted before
func (t *TokenIndex) MaybeSeen(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter.TestString(token)
}

// Add records an accepted token
func (t *TokenIndex) Add(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter.AddString(token)
}
