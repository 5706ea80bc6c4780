package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByLegacyID(ctx context.Context, legacyID int64) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
