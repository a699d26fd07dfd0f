package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const protocolRetries = 3

// createWithProtocol assigns the next protocol and persists the record
// in one transaction, so a failed creation never consumes a number.
// A protocol collision from a concurrent submission is retried with a
// fresh number; any other error aborts.
func createWithProtocol(db *gorm.DB, model interface{}, prefix string, assign func(protocol string) interface{}) error {
	year := time.Now().Year()

	var lastErr error
	for attempt := 0; attempt < protocolRetries; attempt++ {
		lastErr = db.Transaction(func(tx *gorm.DB) error {
			protocol, err := GenerateProtocol(tx, model, prefix, year)
			if err != nil {
				return err
			}
			return tx.Create(assign(protocol)).Error
		})
		if lastErr == nil || !isProtocolUniqueViolation(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// isUniqueViolation matches duplicate-key errors across sqlite, mysql
// and postgres.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// isPendingUniqueViolation -> collision on the pending-only natural key index
func isPendingUniqueViolation(err error) bool {
	if !isUniqueViolation(err) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "uniq_cpf_pending") ||
		strings.Contains(msg, "uniq_plate_pending") ||
		strings.Contains(msg, "cpf") && !strings.Contains(msg, "protocol") ||
		strings.Contains(msg, "plate") && !strings.Contains(msg, "protocol")
}

// isProtocolUniqueViolation -> two submissions drew the same number
func isProtocolUniqueViolation(err error) bool {
	return isUniqueViolation(err) && strings.Contains(err.Error(), "protocol")
}

func valueOrToday(t *time.Time, now time.Time) time.Time {
	if t != nil {
		return *t
	}
	return now.Truncate(24 * time.Hour)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
