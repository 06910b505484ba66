package domain

import "time"

// Employee is a staff record bound to exactly one department.
type Employee struct {
	ID          int64
	Name        string
	Email       string
	JoiningDate *time.Time
	Department  Department
}

// EmployeeDraft is caller supplied state for create and update. Only DepartmentID is
// used to resolve the department; the stored department record is bound instead.
type EmployeeDraft struct {
	Name         string
	Email        string
	JoiningDate  *time.Time
	DepartmentID int64
}
