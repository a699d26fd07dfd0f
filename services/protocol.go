package services

import (
	"database/sql"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/utils"
)

// protocolWidth is the zero-padded counter width. The lexicographic MAX
// below only works while every counter has exactly this many digits.
const protocolWidth = 4

const maxProtocolNumber = 9999

// GenerateProtocol returns the next protocol for a prefix and year, in
// the form PREFIX-YYYYNNNN. Call it inside the transaction that creates
// the request so a failed creation never consumes a number.
func GenerateProtocol(tx *gorm.DB, model interface{}, prefix string, year int) (string, error) {
	yearPrefix := fmt.Sprintf("%s-%d", prefix, year)

	var last sql.NullString
	row := tx.Model(model).
		Where("protocol LIKE ?", yearPrefix+"%").
		Select("MAX(protocol)").
		Row()
	if err := row.Scan(&last); err != nil {
		return "", err
	}

	next := 1
	if last.Valid && len(last.String) >= protocolWidth {
		lastNumber, err := strconv.Atoi(last.String[len(last.String)-protocolWidth:])
		if err != nil {
			return "", fmt.Errorf("malformed protocol %q: %w", last.String, err)
		}
		next = lastNumber + 1
	}

	// Fail loudly instead of silently widening the counter and breaking
	// the parse-back for the rest of the year.
	if next > maxProtocolNumber {
		return "", utils.ErrProtocolExhausted
	}

	return fmt.Sprintf("%s%0*d", yearPrefix, protocolWidth, next), nil
}
