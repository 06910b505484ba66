package dto

// DepartmentRequest payload for creating a department.
type DepartmentRequest struct {
	Name string `json:"name"`
}

// DepartmentResponse is the public department shape.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
