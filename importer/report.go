package importer

// Created is one successfully imported problem.
type Created struct {
	TaskName    string
	ProblemCode string
	ProblemID   int
}

// Report accumulates the problems created during one run, in import order.
type Report struct {
	Created []Created
}

func (r *Report) Add(taskName string, problemCode string, problemID int) {
	r.Created = append(r.Created, Created{
		TaskName:    taskName,
		ProblemCode: problemCode,
		ProblemID:   problemID,
	})
}

// IDs returns the created problem ids in import order.
func (r *Report) IDs() []int {
	ids := make([]int, 0, len(r.Created))
	for _, c := range r.Created {
		ids = append(ids, c.ProblemID)
	}
	return ids
}
