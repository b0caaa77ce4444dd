package polygon

import "encoding/json"

// ProblemInfo mirrors the parameters of problem.updateInfo.
type ProblemInfo struct {
	InputFile     string
	OutputFile    string
	TimeLimitMs   int
	MemoryLimitMb int
	Interactive   bool
}

// Statement is one localized problem statement for problem.saveStatement.
type Statement struct {
	Lang   string
	Name   string
	Legend string
	Input  string
	Output string
}

// Solution is a reference solution file for problem.saveSolution.
type Solution struct {
	Name       string
	File       string
	SourceType string
	Tag        string
}

// Test is a single test for problem.saveTest. Tests flagged with
// UseInStatements are shown as examples in the statement.
type Test struct {
	Testset         string
	Index           int
	Input           string
	Answer          string
	UseInStatements bool
}

// Package is one entry of the problem.packages listing.
type Package struct {
	ID                  int    `json:"id"`
	State               string `json:"state"`
	Type                string `json:"type"`
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
}

// Package build states reported by the API.
const (
	PackageStateReady   = "READY"
	PackageStateFailed  = "FAILED"
	PackageStateRunning = "RUNNING"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}
