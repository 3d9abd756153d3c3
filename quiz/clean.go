package quiz

import "strings"

// stripPreamble drops everything before the first question header when the
// text opens with a recognizable introductory phrase ("here are the
// questions...", "以下是...", and so on). Only the first ~50 characters are
// inspected, case-insensitively; without a marker the text is left alone.
func stripPreamble(text string) string {
	head := []rune(text)
	if len(head) > 50 {
		head = head[:50]
	}

	opening := strings.ToLower(string(head))

	found := false
	for _, marker := range preambleMarkers {
		if strings.Contains(opening, marker) {
			found = true
			break
		}
	}

	if !found {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isQuestionHeader(strings.TrimSpace(line)) {
			return strings.Join(lines[i:], "\n")
		}
	}

	return text
}

// stripAnswerLeaks removes answer-letter patterns that appear mid-line, so a
// stray "（答案：C）" leaked into a stem or option never survives into the
// parsed text. Line-leading answer markers are the proper position and are
// kept for the parser.
func stripAnswerLeaks(text string) string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isAnswerLine(trimmed) {
			continue
		}

		if !answerRe.MatchString(trimmed) {
			continue
		}

		lines[i] = strings.TrimRight(answerRe.ReplaceAllString(line, ""), " \t")
	}

	return strings.Join(lines, "\n")
}
