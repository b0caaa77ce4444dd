package moodle

import (
	"html"
	"regexp"
	"strings"
)

const (
	noInputPlaceholder  = "Входные данные отсутствуют"
	noOutputPlaceholder = "Выходные данные отсутствуют"
)

var (
	brTagRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
	closeBlockRe = regexp.MustCompile(`(?i)</(p|div|h4|h5)>`)
	openBlockRe  = regexp.MustCompile(`(?i)<(p|div|h4|h5)[^>]*>`)
	inlineTagRe  = regexp.MustCompile(`(?i)</?(span|strong|b|i)[^>]*>`)
	anyTagRe     = regexp.MustCompile(`<[^>]+>`)
	wsRe         = regexp.MustCompile(`\s+`)
)

// SplitStatement converts the HTML question text of a CodeRunner question
// into plain-text legend, input format and output format sections. Section
// headers are recognized both in Russian and in English. Empty input/output
// sections are replaced with fixed placeholders.
func SplitStatement(htmlText string) (legend, inputFormat, outputFormat string) {
	text := strings.ReplaceAll(htmlText, "\u00a0", " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = brTagRe.ReplaceAllString(text, "\n")
	text = closeBlockRe.ReplaceAllString(text, "\n")
	text = openBlockRe.ReplaceAllString(text, "")
	text = inlineTagRe.ReplaceAllString(text, "")

	text = html.UnescapeString(text)
	text = anyTagRe.ReplaceAllString(text, "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	var legendLines, inputLines, outputLines []string
	section := "legend"
	for _, line := range lines {
		normalized := strings.ToLower(line)
		switch {
		case strings.HasPrefix(normalized, "вход") && strings.Contains(normalized, "дан"):
			section = "input"
			continue
		case strings.HasPrefix(normalized, "input"):
			section = "input"
			continue
		case strings.HasPrefix(normalized, "выход") && strings.Contains(normalized, "дан"):
			section = "output"
			continue
		case strings.HasPrefix(normalized, "output"):
			section = "output"
			continue
		}

		switch section {
		case "legend":
			legendLines = append(legendLines, line)
		case "input":
			inputLines = append(inputLines, line)
		default:
			outputLines = append(outputLines, line)
		}
	}

	legend = strings.Join(legendLines, "\n\n")
	inputFormat = strings.Join(inputLines, "\n")
	outputFormat = strings.Join(outputLines, "\n")
	if inputFormat == "" {
		inputFormat = noInputPlaceholder
	}
	if outputFormat == "" {
		outputFormat = noOutputPlaceholder
	}
	return legend, inputFormat, outputFormat
}

// stripRedundantTitle removes a leading legend paragraph that merely repeats
// the task title. Moodle statements frequently start with the task name in a
// heading of its own.
func stripRedundantTitle(legend string, title string) string {
	if legend == "" {
		return legend
	}

	sections := strings.Split(legend, "\n\n")
	if len(sections) == 0 {
		return legend
	}

	if normalizeWhitespace(sections[0]) != normalizeWhitespace(title) {
		return legend
	}

	sections = sections[1:]
	for len(sections) > 0 && strings.TrimSpace(sections[0]) == "" {
		sections = sections[1:]
	}
	return strings.Join(sections, "\n\n")
}

func normalizeWhitespace(value string) string {
	return strings.ToLower(wsRe.ReplaceAllString(strings.TrimSpace(value), " "))
}
