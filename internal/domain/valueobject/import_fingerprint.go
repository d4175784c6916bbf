package valueobject

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportFingerprint derives the duplicate-detection key of a statement row.
// The amount is signed and rendered with two decimals; the document number is
// trimmed, so cosmetic differences between two exports of the same statement
// produce the same key.
func ImportFingerprint(accountID uuid.UUID, effectiveDate time.Time, documentNumber string, signedAmount decimal.Decimal) string {
	raw := fmt.Sprintf("account:%s-date:%s-doc:%s-amount:%s",
		accountID.String(),
		DateOf(effectiveDate).Format(DateLayout),
		strings.TrimSpace(documentNumber),
		signedAmount.StringFixed(2),
	)

	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
