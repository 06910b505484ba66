package dto

// DateLayout is the wire format of joining dates.
const DateLayout = "2006-01-02"

// DepartmentRef references a department by id. Any other fields a client sends are
// ignored; the stored department is bound instead.
type DepartmentRef struct {
	ID *int64 `json:"id"`
}

// EmployeeRequest payload for create and full-replacement update.
type EmployeeRequest struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	JoiningDate string         `json:"joining_date"`
	Department  *DepartmentRef `json:"department"`
}

// EmployeeResponse is the public employee shape.
type EmployeeResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	JoiningDate *string            `json:"joining_date"`
	Department  DepartmentResponse `json:"department"`
}
