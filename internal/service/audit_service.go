package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/orgkit/employee-service/internal/events"
)

// AuditService writes an audit log line for every employee lifecycle event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeCreated, a.handleEmployeeCreated)
	a.dispatcher.Subscribe(events.EventEmployeeUpdated, a.handleEmployeeUpdated)
	a.dispatcher.Subscribe(events.EventEmployeeDeleted, a.handleEmployeeDeleted)
}

func (a *AuditService) handleEmployeeCreated(_ context.Context, event events.Event) error {
	a.logger.Info("EmployeeCreated", eventFields(event)...)
	return nil
}

func (a *AuditService) handleEmployeeUpdated(_ context.Context, event events.Event) error {
	fields := eventFields(event)
	if payload, ok := event.Payload.(events.EmployeeUpdatedPayload); ok {
		fields = append(fields, zap.Bool("department_changed", payload.DepartmentChanged()))
	}
	a.logger.Info("EmployeeUpdated", fields...)
	return nil
}

func (a *AuditService) handleEmployeeDeleted(_ context.Context, event events.Event) error {
	a.logger.Info("EmployeeDeleted", eventFields(event)...)
	return nil
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.Int64("employee_id", event.EmployeeID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	}
}
