package audit

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/inventory-api/internal/models"
)

// Catalog mutation actions.
const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionSoftDelete = "SOFT_DELETE"
)

// Logger appends audit entries. Entries are append-only: there is no
// update or delete path through this package.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log writes one entry using the Logger's own connection.
func (l *Logger) Log(action, productID string, details any) error {
	return write(l.db, action, productID, details)
}

// LogTx writes one entry on the given transaction so the audit row
// commits or rolls back together with the primary mutation.
func (l *Logger) LogTx(tx *gorm.DB, action, productID string, details any) error {
	return write(tx, action, productID, details)
}

func write(db *gorm.DB, action, productID string, details any) error {
	var detailsJSON string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		} else {
			// The entry is still written so the action itself is never lost.
			log.Printf("audit: could not encode details for %s %s: %v", action, productID, err)
		}
	}

	entry := models.AuditLog{
		Action:    action,
		ProductID: productID,
		Details:   detailsJSON,
	}

	return db.Create(&entry).Error
}
