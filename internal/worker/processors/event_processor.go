package processors

import (
	"dealsync/internal/events"
	"dealsync/internal/logger"
	"dealsync/internal/worker/processors/audit"

	"gorm.io/gorm"
)

type EventProcessor struct {
	logger   *logger.Logger
	recorder *audit.Recorder
}

func NewEventProcessor(db *gorm.DB, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		logger:   logger,
		recorder: audit.New(db, logger),
	}
}

func (ep *EventProcessor) Process(event events.ReconciliationEvent) error {
	switch event.Type {
	case events.TypeReconciled:
		return ep.recorder.Record(event)
	default:
		ep.logger.Debug("Unhandled event type: %s", event.Type)
		return nil
	}
}
