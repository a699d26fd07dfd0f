package utils

import (
	"errors"
	"sync"
	"time"
)

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

// BlacklistToken keeps a revoked token out of circulation until it
// would have expired anyway.
func BlacklistToken(token string) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = time.Now().Add(24 * time.Hour)
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()

	if expiry, exists := blacklistedTokens[token]; exists {
		if time.Now().Before(expiry) {
			return true
		}
	}
	return false
}

// CleanupBlacklist drops expired entries. Run from a goroutine at startup.
func CleanupBlacklist(interval time.Duration) {
	for {
		time.Sleep(interval)
		blacklistMutex.Lock()
		now := time.Now()
		for token, expiry := range blacklistedTokens {
			if now.After(expiry) {
				delete(blacklistedTokens, token)
			}
		}
		blacklistMutex.Unlock()
	}
}

// ValidateToken parses a token and rejects blacklisted ones.
func ValidateToken(tokenString string) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, errors.New("token has been revoked")
	}
	return ParseToken(tokenString)
}
