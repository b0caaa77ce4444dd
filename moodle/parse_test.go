package moodle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FynjyBath/moodle2polygon/moodle"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<quiz>
  <question type="category">
    <category><text>$course$/top/Алгоритмы/Contest 1</text></category>
  </question>
  <question type="coderunner">
    <name><text>Sum of two numbers</text></name>
    <questiontext format="html">
      <text><![CDATA[<p>Sum of two numbers</p><p>Add <b>a</b> and <b>b</b>.</p><p>Входные данные</p><p>Two integers a and b.</p><p>Выходные данные</p><p>One integer.</p>]]></text>
    </questiontext>
    <coderunnertype>python3</coderunnertype>
    <answer><text>a, b = map(int, input().split())
print(a + b)</text></answer>
    <testcases>
      <testcase useasexample="1">
        <stdin><text>1 2</text></stdin>
        <expected><text>3</text></expected>
      </testcase>
      <testcase useasexample="0">
        <stdin><text>5 7</text></stdin>
        <expected><text>12</text></expected>
      </testcase>
    </testcases>
  </question>
  <question type="multichoice">
    <name><text>Not a programming task</text></name>
  </question>
</quiz>`

func TestParseExport(t *testing.T) {
	export, err := moodle.ParseExport([]byte(sampleExport))
	require.NoError(t, err)

	require.Equal(t, "Contest 1", export.ContestName)
	require.Len(t, export.Tasks, 1)

	task := export.Tasks[0]
	require.Equal(t, "Sum of two numbers", task.Name)
	require.Equal(t, "Add a and b.", task.Legend)
	require.Equal(t, "Two integers a and b.", task.InputFormat)
	require.Equal(t, "One integer.", task.OutputFormat)
	require.Equal(t, "python3", task.SolutionLang)
	require.Contains(t, task.Solution, "print(a + b)")

	require.Len(t, task.Tests, 2)
	require.Equal(t, 1, task.Tests[0].Index)
	require.Equal(t, "1 2", task.Tests[0].Input)
	require.Equal(t, "3", task.Tests[0].Output)
	require.True(t, task.Tests[0].UseInStatements)
	require.Equal(t, 2, task.Tests[1].Index)
	require.False(t, task.Tests[1].UseInStatements)
}

func TestParseExportMalformedXML(t *testing.T) {
	_, err := moodle.ParseExport([]byte("<quiz><question"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse export XML")
}

func TestParseExportMissingSolution(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Broken</text></name>
    <questiontext><text>Do something.</text></questiontext>
    <testcases>
      <testcase><stdin><text>1</text></stdin><expected><text>1</text></expected></testcase>
    </testcases>
  </question>
</quiz>`
	_, err := moodle.ParseExport([]byte(content))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing solution")
}

func TestParseExportNoTestCases(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Untested</text></name>
    <questiontext><text>Do something.</text></questiontext>
    <answer><text>print(42)</text></answer>
  </question>
</quiz>`
	_, err := moodle.ParseExport([]byte(content))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no test cases")
}

func TestParseExportMissingStatement(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Blank</text></name>
    <questiontext><text>  </text></questiontext>
    <answer><text>print(42)</text></answer>
    <testcases>
      <testcase><stdin><text>1</text></stdin><expected><text>1</text></expected></testcase>
    </testcases>
  </question>
</quiz>`
	_, err := moodle.ParseExport([]byte(content))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing statement")
}

func TestParseExportSkipsIncompleteTestCases(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Partial</text></name>
    <questiontext><text>Echo the input.</text></questiontext>
    <answer><text>print(input())</text></answer>
    <testcases>
      <testcase><stdin><text>orphan input</text></stdin></testcase>
      <testcase><expected><text>orphan output</text></expected></testcase>
      <testcase><stdin><text>hi</text></stdin><expected><text>hi</text></expected></testcase>
    </testcases>
  </question>
</quiz>`
	export, err := moodle.ParseExport([]byte(content))
	require.NoError(t, err)
	require.Len(t, export.Tasks, 1)

	tests := export.Tasks[0].Tests
	require.Len(t, tests, 1)
	require.Equal(t, 1, tests[0].Index)
	require.Equal(t, "hi", tests[0].Input)
}

func TestParseExportOnlyIncompleteTestCases(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Hollow</text></name>
    <questiontext><text>Echo the input.</text></questiontext>
    <answer><text>print(input())</text></answer>
    <testcases>
      <testcase><stdin><text>orphan input</text></stdin></testcase>
    </testcases>
  </question>
</quiz>`
	_, err := moodle.ParseExport([]byte(content))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no test cases")
}

func TestParseExportAnswerAsCharData(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Inline answer</text></name>
    <questiontext><text>Echo the input.</text></questiontext>
    <answer>print(input())</answer>
    <testcases>
      <testcase><stdin><text>hi</text></stdin><expected><text>hi</text></expected></testcase>
    </testcases>
  </question>
</quiz>`
	export, err := moodle.ParseExport([]byte(content))
	require.NoError(t, err)
	require.Len(t, export.Tasks, 1)
	require.Equal(t, "print(input())", export.Tasks[0].Solution)
}

func TestParseExportFileContestNameFallsBackToFileStem(t *testing.T) {
	content := `<quiz>
  <question type="coderunner">
    <name><text>Lonely</text></name>
    <questiontext><text>Print zero.</text></questiontext>
    <answer><text>print(0)</text></answer>
    <testcases>
      <testcase><stdin><text></text></stdin><expected><text>0</text></expected></testcase>
    </testcases>
  </question>
</quiz>`

	path := filepath.Join(t.TempDir(), "spring-quiz.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	export, err := moodle.ParseExportFile(path)
	require.NoError(t, err)
	require.Equal(t, "spring-quiz", export.ContestName)
	require.Len(t, export.Tasks, 1)
}

func TestParseExportFileNotFound(t *testing.T) {
	_, err := moodle.ParseExportFile(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
}
