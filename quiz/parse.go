package quiz

import (
	"fmt"
	"strings"
)

const (
	optionCount      = 4
	stemFallbackRune = 50
	missingOption    = "(option not provided)"
)

var optionLetters = []string{"A", "B", "C", "D"}

type item struct {
	stem        string
	options     []string
	answer      string
	explanation string
}

// parseBlock reads one segmented block into a question. A block with no
// recognizable option lines is discarded; a partial option set is padded to
// four so callers always see a uniform shape. Options keep their encounter
// order even if the model emitted the letters scrambled.
func parseBlock(block Block) (item, bool) {
	lines := strings.Split(block.Text, "\n")

	type option struct {
		letter string
		body   string
	}

	var stemLines []string
	var found []option
	seen := make(map[string]bool, optionCount)

	for _, line := range lines {
		trimmed := stripEmphasis(strings.TrimSpace(line))
		if len(trimmed) == 0 {
			continue
		}

		if m := optionRe.FindStringSubmatch(trimmed); m != nil {
			if !seen[m[1]] && len(found) < optionCount {
				seen[m[1]] = true
				found = append(found, option{letter: m[1], body: strings.TrimSpace(m[2])})
			}
			continue
		}

		if isAnswerLine(trimmed) || isExplanationLine(trimmed) {
			continue
		}

		if len(found) == 0 {
			stemLines = append(stemLines, headerBody(trimmed))
		}
	}

	if len(found) == 0 {
		return item{}, false
	}

	options := make([]string, 0, optionCount)
	for _, opt := range found {
		body := opt.body
		if len(body) == 0 {
			body = missingOption
		}
		options = append(options, fmt.Sprintf("%s. %s", opt.letter, body))
	}
	for _, letter := range optionLetters {
		if len(options) == optionCount {
			break
		}
		if seen[letter] {
			continue
		}
		options = append(options, fmt.Sprintf("%s. %s", letter, missingOption))
	}

	stem := strings.TrimSpace(strings.Join(stemLines, " "))
	if len(stem) == 0 {
		stem = stemFallback(block.Text)
	}

	return item{
		stem:        stem,
		options:     options,
		answer:      findAnswer(block),
		explanation: findExplanation(block),
	}, true
}

// headerBody drops a leading question-number marker so the stem reads as
// plain text.
func headerBody(line string) string {
	if m := labeledHeadRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2])
	}
	if m := numericHeadRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2])
	}
	return line
}

// findAnswer looks for an answer marker in the block text first, then in the
// raw span that may include lines the segmenter excluded. Absent both, "A"
// is reported rather than failing the whole question.
func findAnswer(block Block) string {
	for _, source := range []string{block.Text, block.Raw} {
		for _, line := range strings.Split(source, "\n") {
			if m := answerLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				return m[1]
			}
		}
		if m := answerRe.FindStringSubmatch(source); m != nil {
			return m[1]
		}
	}
	return "A"
}

// findExplanation prefers an explicitly labeled explanation line, extended
// with its unlabeled continuation lines. Failing that, free text following
// the answer line is used until a blank line or another marker.
func findExplanation(block Block) string {
	lines := strings.Split(block.Raw, "\n")

	var parts []string
	collecting := false
	afterAnswer := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := explainLineRe.FindStringSubmatch(trimmed); m != nil {
			parts = parts[:0]
			if body := strings.TrimSpace(m[1]); len(body) > 0 {
				parts = append(parts, body)
			}
			collecting = true
			afterAnswer = false
			continue
		}

		if collecting {
			if len(trimmed) == 0 || isAnswerLine(trimmed) || isQuestionHeader(trimmed) || isOptionLine(trimmed) {
				break
			}
			parts = append(parts, trimmed)
			continue
		}

		if isAnswerLine(trimmed) {
			afterAnswer = true
			continue
		}

		if afterAnswer {
			if len(trimmed) == 0 || isQuestionHeader(trimmed) || isOptionLine(trimmed) {
				afterAnswer = false
				continue
			}
			parts = append(parts, trimmed)
		}
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

// stemFallback labels a block that yielded no stem lines with the head of
// its text. The ellipsis marks the stem as synthesized, so it is appended
// even when nothing was cut off.
func stemFallback(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	runes := []rune(s)
	if len(runes) > stemFallbackRune {
		runes = runes[:stemFallbackRune]
	}
	return strings.TrimSpace(string(runes)) + "..."
}
