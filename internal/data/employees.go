package data

import "context"

type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeModel struct {
	Path string
}

func (m EmployeeModel) LoadAll(ctx context.Context) ([]Employee, error) {
	return loadSnapshot[Employee](ctx, m.Path)
}

func (m EmployeeModel) SaveAll(ctx context.Context, emps []Employee) error {
	return saveSnapshot(ctx, m.Path, emps)
}
