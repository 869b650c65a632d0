// Package event provides the production EventDispatcher, which records
// domain events in the structured log.
package event

import (
	log "github.com/sirupsen/logrus"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/service"
)

type logDispatcher struct {
	logger *log.Logger
}

func NewLogDispatcher(logger *log.Logger) service.EventDispatcher {
	return &logDispatcher{logger: logger}
}

func (d *logDispatcher) Dispatch(event service.Event) error {
	d.logger.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
