package moodle

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type xmlQuiz struct {
	XMLName   xml.Name      `xml:"quiz"`
	Questions []xmlQuestion `xml:"question"`
}

type xmlQuestion struct {
	Type         string        `xml:"type,attr"`
	Name         xmlText       `xml:"name"`
	QuestionText xmlText       `xml:"questiontext"`
	Category     xmlText       `xml:"category"`
	Answer       xmlAnswer     `xml:"answer"`
	CodeRunner   string        `xml:"coderunnertype"`
	TestCases    []xmlTestCase `xml:"testcases>testcase"`
}

type xmlText struct {
	Text string `xml:"text"`
}

// Some Moodle exports wrap the reference solution in a <text> child, others
// put it directly into <answer> as character data.
type xmlAnswer struct {
	Text     string `xml:"text"`
	CharData string `xml:",chardata"`
}

func (a xmlAnswer) source() string {
	if s := strings.TrimSpace(a.Text); s != "" {
		return s
	}
	return strings.TrimSpace(a.CharData)
}

// Stdin and Expected are pointers so that a testcase missing either node can
// be told apart from one with empty text; such entries are skipped entirely.
type xmlTestCase struct {
	UseAsExample string   `xml:"useasexample,attr"`
	Stdin        *xmlText `xml:"stdin"`
	Expected     *xmlText `xml:"expected"`
}

// ParseExportFile reads a Moodle CodeRunner XML export from disk.
func ParseExportFile(path string) (*Export, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}

	export, err := ParseExport(content)
	if err != nil {
		return nil, err
	}

	if export.ContestName == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		export.ContestName = stem
	}
	if export.ContestName == "" {
		export.ContestName = "Moodle Contest"
	}

	return export, nil
}

// ParseExport parses the XML content of a Moodle export. Every coderunner
// question must carry a name, a statement, a solution and at least one test
// case; anything less aborts the whole parse. Questions of other types are
// skipped, except the category question which names the contest.
func ParseExport(content []byte) (*Export, error) {
	var quiz xmlQuiz
	if err := xml.Unmarshal(content, &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse export XML: %w", err)
	}

	export := &Export{}

	for _, q := range quiz.Questions {
		if q.Type == "category" {
			if export.ContestName == "" {
				name := strings.TrimSpace(q.Category.Text)
				if idx := strings.LastIndex(name, "/"); idx >= 0 {
					name = name[idx+1:]
				}
				export.ContestName = strings.TrimSpace(name)
			}
			continue
		}
		if q.Type != "coderunner" {
			continue
		}

		task, err := parseQuestion(q)
		if err != nil {
			return nil, err
		}
		export.Tasks = append(export.Tasks, *task)
	}

	return export, nil
}

func parseQuestion(q xmlQuestion) (*Task, error) {
	name := strings.TrimSpace(q.Name.Text)
	if name == "" {
		return nil, fmt.Errorf("malformed question entry: missing name")
	}

	statement := q.QuestionText.Text
	if strings.TrimSpace(statement) == "" {
		return nil, fmt.Errorf("malformed question %q: missing statement", name)
	}

	solution := q.Answer.source()
	if solution == "" {
		return nil, fmt.Errorf("malformed question %q: missing solution", name)
	}

	legend, inputFormat, outputFormat := SplitStatement(statement)
	legend = stripRedundantTitle(legend, name)

	tests := make([]TestCase, 0, len(q.TestCases))
	for _, tc := range q.TestCases {
		if tc.Stdin == nil || tc.Expected == nil {
			continue
		}
		tests = append(tests, TestCase{
			Index:           len(tests) + 1,
			Input:           tc.Stdin.Text,
			Output:          tc.Expected.Text,
			UseInStatements: tc.UseAsExample == "1",
		})
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("malformed question %q: no test cases", name)
	}

	return &Task{
		Name:         name,
		Legend:       legend,
		InputFormat:  inputFormat,
		OutputFormat: outputFormat,
		Solution:     solution,
		SolutionLang: strings.TrimSpace(q.CodeRunner),
		Tests:        tests,
	}, nil
}
