package database

import (
	"context"
)

// TechStackRepo works on tech_stack through plain statements with named
// parameters, so it behaves the same on every dialect.
type TechStackRepo struct {
	stmts statements
}

func NewTechStackRepo(stmts statements) *TechStackRepo {
	return &TechStackRepo{stmts}
}

type techStackRow struct {
	ProjectID  int64
	Technology string
}

// FindByProject returns the technologies of a project in insertion order.
func (r *TechStackRepo) FindByProject(ctx context.Context, projectID int64) ([]string, error) {
	technologies := []string{}
	_, err := r.stmts.Query(ctx, &technologies,
		"SELECT technology FROM tech_stack WHERE project_id = @project_id ORDER BY id ASC",
		Params{"project_id": projectID})
	return technologies, err
}

// FindByProjects resolves the tech stacks of several projects with one query.
// Projects without entries are absent from the result.
func (r *TechStackRepo) FindByProjects(ctx context.Context, projectIDs []int64) (map[int64][]string, error) {
	stacks := make(map[int64][]string, len(projectIDs))
	if len(projectIDs) == 0 {
		return stacks, nil
	}

	var rows []techStackRow
	_, err := r.stmts.Query(ctx, &rows,
		"SELECT project_id, technology FROM tech_stack WHERE project_id IN @project_ids ORDER BY id ASC",
		Params{"project_ids": projectIDs})
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stacks[row.ProjectID] = append(stacks[row.ProjectID], row.Technology)
	}
	return stacks, nil
}

// Add appends technologies to a project, preserving their order.
func (r *TechStackRepo) Add(ctx context.Context, projectID int64, technologies []string) error {
	for _, technology := range technologies {
		_, err := r.stmts.Insert(ctx,
			"INSERT INTO tech_stack (project_id, technology) VALUES (@project_id, @technology)",
			Params{"project_id": projectID, "technology": technology})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteByProject removes every entry of a project and returns how many were removed.
func (r *TechStackRepo) DeleteByProject(ctx context.Context, projectID int64) (int64, error) {
	result, err := r.stmts.Exec(ctx,
		"DELETE FROM tech_stack WHERE project_id = @project_id",
		Params{"project_id": projectID})
	return result.RowsAffected, err
}
