package audit

import (
	"fmt"

	"dealsync/internal/events"
	"dealsync/internal/logger"
	"dealsync/internal/models"
	"dealsync/internal/promo"

	"gorm.io/gorm"
)

// Recorder persists one audit row per decision of a reconciliation event.
type Recorder struct {
	db     *gorm.DB
	logger *logger.Logger
}

func New(db *gorm.DB, logger *logger.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: logger,
	}
}

func (r *Recorder) Record(event events.ReconciliationEvent) error {
	if len(event.Decisions) == 0 {
		r.logger.Debug("Event %s carried no decisions, nothing to record", event.ID)
		return nil
	}

	rows := make([]models.Reconciliation, 0, len(event.Decisions))
	for i, d := range event.Decisions {
		row := models.Reconciliation{
			EventID:        event.ID,
			ProductID:      event.ProductID,
			VariantID:      d.VariantID,
			City:           string(d.City),
			Action:         string(d.Action),
			CollectionGID:  d.CollectionID,
			Price:          amountPtr(d.Price),
			CompareAtPrice: amountPtr(d.CompareAtPrice),
		}
		// Results parallel the decision list; guard against truncated events.
		if i < len(event.Results) {
			row.Success = event.Results[i].OK
			if event.Results[i].Error != "" {
				msg := event.Results[i].Error
				row.Error = &msg
			}
		}
		rows = append(rows, row)
	}

	if err := r.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to record reconciliation %s: %w", event.ID, err)
	}

	r.logger.Debug("Recorded %d reconciliation rows for product %d", len(rows), event.ProductID)
	return nil
}

// amountPtr maps an absent amount to NULL.
func amountPtr(a promo.Amount) *float64 {
	if a.IsNaN() {
		return nil
	}
	f := float64(a)
	return &f
}
