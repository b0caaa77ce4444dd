package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FynjyBath/moodle2polygon/moodle"
	"github.com/FynjyBath/moodle2polygon/polygon"
)

// DefaultChecker compares the output as a sequence of long integers. Every
// imported problem gets this checker regardless of task content.
const DefaultChecker = "std::ncmp.cpp"

const (
	statementLang        = "russian"
	defaultTimeLimitMs   = 2000
	defaultMemoryLimitMb = 256
	mainSolutionTag      = "MA"

	// DefaultBuildTimeout bounds the wait for one package build.
	DefaultBuildTimeout = 5 * time.Minute
)

// API is the subset of the Polygon client the importer drives.
type API interface {
	CreateProblem(ctx context.Context, name string) (int, error)
	UpdateInfo(ctx context.Context, problemID int, info polygon.ProblemInfo) error
	SaveStatement(ctx context.Context, problemID int, st polygon.Statement) error
	SetChecker(ctx context.Context, problemID int, checker string) error
	SaveSolution(ctx context.Context, problemID int, sol polygon.Solution) error
	SaveTest(ctx context.Context, problemID int, test polygon.Test) error
	CommitChanges(ctx context.Context, problemID int, minor bool) error
	BuildPackage(ctx context.Context, problemID int, full bool, verify bool) error
	WaitForPackage(ctx context.Context, problemID int, timeout time.Duration) error
}

// Importer creates one Polygon problem per Moodle task, strictly in export
// order. Any failed call aborts the whole run; problems created before the
// failure stay on the Polygon side.
type Importer struct {
	api          API
	buildTimeout time.Duration
}

func New(api API) *Importer {
	return &Importer{
		api:          api,
		buildTimeout: DefaultBuildTimeout,
	}
}

// ImportAll processes every task of the export and returns the report of
// created problems. On failure the report still lists the problems created
// so far.
func (imp *Importer) ImportAll(ctx context.Context, export *moodle.Export) (*Report, error) {
	slug := Slugify(export.ContestName, "contest")
	report := &Report{}

	for i, task := range export.Tasks {
		code := fmt.Sprintf("%s-%02d", slug, i+1)

		problemID, err := imp.importTask(ctx, code, task)
		if err != nil {
			return report, fmt.Errorf("failed to create problem '%s': %w", task.Name, err)
		}
		report.Add(task.Name, code, problemID)
	}

	return report, nil
}

func (imp *Importer) importTask(ctx context.Context, code string, task moodle.Task) (int, error) {
	logger := log.With().
		Str("problemCode", code).
		Str("taskName", task.Name).
		Logger()

	logger.Info().Msg("Creating Polygon problem")

	problemID, err := imp.api.CreateProblem(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("error creating problem: %w", err)
	}
	logger = logger.With().Int("problemId", problemID).Logger()
	logger.Debug().Msg("Created problem")

	err = imp.api.UpdateInfo(ctx, problemID, polygon.ProblemInfo{
		InputFile:     "stdin",
		OutputFile:    "stdout",
		TimeLimitMs:   defaultTimeLimitMs,
		MemoryLimitMb: defaultMemoryLimitMb,
		Interactive:   false,
	})
	if err != nil {
		return 0, fmt.Errorf("error updating problem info: %w", err)
	}
	logger.Debug().Msg("Updated problem info")

	legend := task.Legend
	if legend == "" {
		legend = task.Name
	}
	err = imp.api.SaveStatement(ctx, problemID, polygon.Statement{
		Lang:   statementLang,
		Name:   task.Name,
		Legend: legend,
		Input:  task.InputFormat,
		Output: task.OutputFormat,
	})
	if err != nil {
		return 0, fmt.Errorf("error saving statement: %w", err)
	}
	logger.Debug().Msg("Saved statement")

	if err := imp.api.SetChecker(ctx, problemID, DefaultChecker); err != nil {
		return 0, fmt.Errorf("error setting checker: %w", err)
	}
	logger.Debug().Str("checker", DefaultChecker).Msg("Set checker")

	if err := imp.api.SaveSolution(ctx, problemID, mapSolution(task)); err != nil {
		return 0, fmt.Errorf("error saving solution: %w", err)
	}
	logger.Debug().Msg("Saved solution")

	for _, test := range task.Tests {
		err := imp.api.SaveTest(ctx, problemID, polygon.Test{
			Testset:         "tests",
			Index:           test.Index,
			Input:           test.Input,
			Answer:          test.Output,
			UseInStatements: test.UseInStatements,
		})
		if err != nil {
			return 0, fmt.Errorf("error saving test %d: %w", test.Index, err)
		}
	}
	logger.Debug().Int("count", len(task.Tests)).Msg("Saved tests")

	if err := imp.api.CommitChanges(ctx, problemID, false); err != nil {
		return 0, fmt.Errorf("error committing changes: %w", err)
	}
	logger.Debug().Msg("Committed changes")

	if err := imp.api.BuildPackage(ctx, problemID, true, true); err != nil {
		return 0, fmt.Errorf("error building package: %w", err)
	}
	logger.Debug().Msg("Started package build")

	if err := imp.api.WaitForPackage(ctx, problemID, imp.buildTimeout); err != nil {
		return 0, fmt.Errorf("error waiting for package: %w", err)
	}
	logger.Info().Msg("Problem imported")

	return problemID, nil
}

type solutionLang struct {
	filename   string
	sourceType string
}

// CodeRunner question types mapped to Polygon source types. Anything
// unrecognized is treated as Python 3, which is what CodeRunner courses use
// almost exclusively.
var solutionLangs = map[string]solutionLang{
	"python3":         {"solution.py", "python.3"},
	"python3_w_input": {"solution.py", "python.3"},
	"c_program":       {"solution.c", "c.gcc"},
	"cpp_program":     {"solution.cpp", "cpp.g++17"},
}

func mapSolution(task moodle.Task) polygon.Solution {
	lang, ok := solutionLangs[task.SolutionLang]
	if !ok {
		lang = solutionLangs["python3"]
	}
	return polygon.Solution{
		Name:       lang.filename,
		File:       task.Solution,
		SourceType: lang.sourceType,
		Tag:        mainSolutionTag,
	}
}
