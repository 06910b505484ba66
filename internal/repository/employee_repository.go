package repository

import (
	"context"

	"github.com/orgkit/employee-service/internal/domain"
)

// EmployeeRepository manages employee persistence. Reads return the employee with its
// department resolved.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository builds the postgres repository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{db: db}
}

// departments are joined loosely: a removed department leaves the employee readable.
const employeeSelect = `
        SELECT e.id, e.name, e.email, e.joining_date, e.department_id, COALESCE(d.name, '')
        FROM employees e
        LEFT JOIN departments d ON d.id = e.department_id`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, joining_date, department_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.JoiningDate,
		emp.Department.ID,
	).Scan(&emp.ID)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, email=$2, joining_date=$3, department_id=$4
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		emp.Name,
		emp.Email,
		emp.JoiningDate,
		emp.Department.ID,
		emp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := employeeSelect + ` WHERE e.id=$1`
	var emp domain.Employee
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.JoiningDate,
		&emp.Department.ID,
		&emp.Department.Name,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := employeeSelect + ` ORDER BY e.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.JoiningDate, &emp.Department.ID, &emp.Department.Name); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM employees WHERE id=$1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
