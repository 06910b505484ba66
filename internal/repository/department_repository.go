package repository

import (
	"context"

	"github.com/orgkit/employee-service/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Delete(ctx context.Context, id int64) error
}

type departmentRepository struct {
	db DBTX
}

// NewDepartmentRepository builds the postgres repository.
func NewDepartmentRepository(db DBTX) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM departments`
	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name)
        VALUES ($1)
        RETURNING id`
	return r.db.QueryRow(ctx, query, dept.Name).Scan(&dept.ID)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `
        SELECT id, name
        FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.db.QueryRow(ctx, query, id).Scan(&dept.ID, &dept.Name); err != nil {
		return nil, mapNoRows(err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `
        SELECT id, name
        FROM departments ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Department{}
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM departments WHERE id=$1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
