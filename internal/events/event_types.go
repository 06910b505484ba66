package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EmployeeID int64     `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, employeeID int64, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
}

// EmployeeUpdatedPayload payload.
type EmployeeUpdatedPayload struct {
	PreviousDepartmentID int64  `json:"previous_department_id"`
	DepartmentID         int64  `json:"department_id"`
	DepartmentName       string `json:"department_name"`
}

// DepartmentChanged reports whether the update moved the employee.
func (p EmployeeUpdatedPayload) DepartmentChanged() bool {
	return p.PreviousDepartmentID != p.DepartmentID
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	DepartmentID int64 `json:"department_id"`
}
