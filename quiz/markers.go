package quiz

import (
	"regexp"
	"strings"
)

var (
	// option lines: "A. body", "B、body", "C：body", "D) body"
	optionRe = regexp.MustCompile(`^([A-D])\s*[.、。．:：)）]\s*(.*)$`)

	// answer markers, anywhere in a span. The letter class stays
	// case-sensitive and the trailing \b keeps prose like "answer DNS
	// queries" from matching as an answer letter
	answerRe = regexp.MustCompile(`(?:答案|[Aa]nswer|ANSWER)\s*[:：.、\s]*[（(]?([A-D])\b[)）]?`)

	// answer markers at line start
	answerLineRe = regexp.MustCompile(`^[*_#\s]*(?:答案|[Aa]nswer|ANSWER)\s*[:：.、\s]*[（(]?([A-D])\b[)）]?`)

	// numeric question headers: "3. body", "12、body"
	numericHeadRe = regexp.MustCompile(`^(\d+)\s*[.、:：)）]\s*(.*)$`)

	// labeled bilingual question headers: "題目3：body", "Question 3: body"
	labeledHeadRe = regexp.MustCompile(`^(?:題目|问题|[Qq]uestion|QUESTION)\s*(\d+)\s*[:：.、]?\s*(.*)$`)

	// explanation labels: "解析：...", "Explanation: ..."
	explainLineRe = regexp.MustCompile(`^[*_#\s]*(?:解析|解釋|[Ee]xplanation|EXPLANATION)\s*[:：.、]?\s*(.*)$`)
)

// introductory phrases a model tends to open with before the first question.
// These must be distinctive enough not to occur inside an ordinary stem:
// single common words ("sure") would fire on prose like "pressure"
var preambleMarkers = []string{
	"here are",
	"here is",
	"以下是",
	"以下為",
	"以下有",
	"根據",
}

const emphasisCutset = "*_#` \t"

// stripEmphasis removes markdown emphasis characters from both ends of a
// line so "**題目1：**" and "題目1：" segment the same way.
func stripEmphasis(line string) string {
	return strings.Trim(line, emphasisCutset)
}

func isOptionLine(line string) bool {
	return optionRe.MatchString(stripEmphasis(line))
}

func isAnswerLine(line string) bool {
	return answerLineRe.MatchString(line)
}

func isExplanationLine(line string) bool {
	return explainLineRe.MatchString(line)
}

// isQuestionHeader recognizes both bare numeric headers and the labeled
// bilingual form, with or without markdown emphasis.
func isQuestionHeader(line string) bool {
	stripped := stripEmphasis(line)
	if isOptionLine(stripped) || isAnswerLine(stripped) {
		return false
	}
	return numericHeadRe.MatchString(stripped) || labeledHeadRe.MatchString(stripped)
}
