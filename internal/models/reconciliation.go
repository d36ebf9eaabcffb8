package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reconciliation is one audited decision/result pair from a webhook
// reconciliation pass. Rows are append-only observations; replayed webhook
// deliveries simply add more rows.
type Reconciliation struct {
	ID             string   `json:"id" gorm:"type:uuid;primary_key"`
	EventID        string   `json:"event_id" gorm:"not null"`
	ProductID      int64    `json:"product_id" gorm:"not null"`
	VariantID      int64    `json:"variant_id" gorm:"not null"`
	City           string   `json:"city" gorm:"not null"`
	Action         string   `json:"action" gorm:"not null"`
	CollectionGID  string   `json:"collection_gid" gorm:"not null"`
	Price          *float64 `json:"price" gorm:"type:decimal(10,2)"`
	CompareAtPrice *float64 `json:"compare_at_price" gorm:"type:decimal(10,2)"`
	Success        bool     `json:"success"`
	Error          *string  `json:"error"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Reconciliation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
