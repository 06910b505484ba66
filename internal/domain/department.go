package domain

// Department represents an organizational unit employees belong to.
type Department struct {
	ID   int64
	Name string
}

// DefaultDepartmentNames are seeded, in order, into an empty department store.
var DefaultDepartmentNames = []string{"HR", "Finance", "Engineering"}
