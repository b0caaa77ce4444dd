package moodle

// Task is one CodeRunner question from a Moodle export, already split into
// statement sections and paired with its reference solution.
type Task struct {
	Name         string
	Legend       string
	InputFormat  string
	OutputFormat string
	Solution     string
	SolutionLang string
	Tests        []TestCase
}

// TestCase is a single (input, expected output) pair. Index is 1-based and
// follows the order of the testcases in the export.
type TestCase struct {
	Index           int
	Input           string
	Output          string
	UseInStatements bool
}

// Export is the parsed content of one Moodle XML export file.
type Export struct {
	ContestName string
	Tasks       []Task
}
