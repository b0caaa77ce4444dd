package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FynjyBath/moodle2polygon/importer"
	"github.com/FynjyBath/moodle2polygon/moodle"
)

var (
	previewTitleStyle  = lipgloss.NewStyle().Bold(true)
	previewHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	previewLabelStyle  = lipgloss.NewStyle().Faint(true)
)

// TaskPreview is what --dry-run shows for one task: everything the import
// would send, minus the statement body.
type TaskPreview struct {
	ProblemCode  string
	TaskName     string
	TestCount    int
	ExampleCount int
	SolutionLang string
	HasLegend    bool
}

func buildPreviews(export *moodle.Export) []TaskPreview {
	slug := importer.Slugify(export.ContestName, "contest")

	previews := make([]TaskPreview, 0, len(export.Tasks))
	for i, task := range export.Tasks {
		examples := 0
		for _, test := range task.Tests {
			if test.UseInStatements {
				examples++
			}
		}

		lang := task.SolutionLang
		if lang == "" {
			lang = "python3"
		}

		previews = append(previews, TaskPreview{
			ProblemCode:  fmt.Sprintf("%s-%02d", slug, i+1),
			TaskName:     task.Name,
			TestCount:    len(task.Tests),
			ExampleCount: examples,
			SolutionLang: lang,
			HasLegend:    task.Legend != "",
		})
	}
	return previews
}

func renderPreview(export *moodle.Export) string {
	var b strings.Builder

	b.WriteString(previewHeaderStyle.Render(fmt.Sprintf("Contest: %s", export.ContestName)))
	b.WriteString("\n\n")

	for _, p := range buildPreviews(export) {
		b.WriteString(previewTitleStyle.Render(fmt.Sprintf("%s  %s", p.ProblemCode, p.TaskName)))
		b.WriteString("\n")
		b.WriteString(previewLabelStyle.Render("  tests: "))
		b.WriteString(fmt.Sprintf("%d (%d examples)", p.TestCount, p.ExampleCount))
		b.WriteString("\n")
		b.WriteString(previewLabelStyle.Render("  solution: "))
		b.WriteString(p.SolutionLang)
		if !p.HasLegend {
			b.WriteString("\n")
			b.WriteString(previewLabelStyle.Render("  note: "))
			b.WriteString("legend is empty, task name will be used")
		}
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%d tasks parsed, nothing sent to Polygon\n", len(export.Tasks)))
	return b.String()
}
