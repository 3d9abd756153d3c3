package quiz

import "strings"

// Block is a candidate span believed to contain exactly one question. Text
// is what the per-block parser reads for stem and options; Raw is the full
// source span, which may additionally carry the answer and explanation lines
// a strategy excluded from Text.
type Block struct {
	Text string
	Raw  string
}

// strategies are tried in order; the first one producing any block wins and
// the rest are skipped. They share one shape so the caller never has to know
// which one fired.
var strategies = []func(string) []Block{
	splitNumericHeaders,
	splitLabeledHeaders,
	scanLines,
	scanOptionGroups,
}

func segment(text string) []Block {
	for _, strategy := range strategies {
		if blocks := strategy(text); len(blocks) > 0 {
			return blocks
		}
	}
	return nil
}

// splitNumericHeaders cuts the text at every line starting with an integer
// and a separator; each block runs to the next header or end of text.
func splitNumericHeaders(text string) []Block {
	return splitOnHeaders(text, func(line string) bool {
		stripped := stripEmphasis(line)
		return !isAnswerLine(stripped) && !isOptionLine(stripped) && numericHeadRe.MatchString(stripped)
	})
}

// splitLabeledHeaders is the same cut keyed on the bilingual labeled form
// ("題目N：" / "Question N:").
func splitLabeledHeaders(text string) []Block {
	return splitOnHeaders(text, func(line string) bool {
		return labeledHeadRe.MatchString(stripEmphasis(line))
	})
}

func splitOnHeaders(text string, isHeader func(string) bool) []Block {
	lines := strings.Split(text, "\n")

	var starts []int
	for i, line := range lines {
		if isHeader(strings.TrimSpace(line)) {
			starts = append(starts, i)
		}
	}

	if len(starts) == 0 {
		return nil
	}

	blocks := make([]Block, 0, len(starts)+1)

	// a headerless first question still deserves a block; spans with no
	// option lines get discarded by the parser anyway
	if starts[0] > 0 {
		span := strings.TrimSpace(strings.Join(lines[:starts[0]], "\n"))
		if len(span) > 0 {
			blocks = append(blocks, Block{Text: span, Raw: span})
		}
	}

	for n, start := range starts {
		end := len(lines)
		if n+1 < len(starts) {
			end = starts[n+1]
		}

		span := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if len(span) == 0 {
			continue
		}

		blocks = append(blocks, Block{Text: span, Raw: span})
	}

	return blocks
}

// scanLines is the general fallback for header-less or irregular output: a
// single pass over the lines with running state. Option lines accumulate,
// an answer line closes the block in progress, a question marker flushes
// whatever is open, and anything else continues the stem.
func scanLines(text string) []Block {
	lines := strings.Split(text, "\n")

	var blocks []Block
	var kept []string
	start := -1
	closed := false

	flush := func(end int) {
		if len(kept) > 0 {
			raw := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
			blocks = append(blocks, Block{
				Text: strings.Join(kept, "\n"),
				Raw:  raw,
			})
		}
		kept = nil
		start = -1
		closed = false
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if len(trimmed) == 0 {
			// a blank line ends a closed block's trailing explanation
			if closed {
				flush(i)
			}
			continue
		}

		if isQuestionHeader(trimmed) {
			flush(i)
			start = i
			kept = append(kept, trimmed)
			continue
		}

		if closed {
			// trailing lines stay in Raw for explanation extraction
			continue
		}

		if isAnswerLine(trimmed) {
			// the answer line itself is excluded from Text but kept in Raw
			closed = true
			continue
		}

		if start == -1 {
			start = i
		}
		kept = append(kept, trimmed)
	}

	flush(len(lines))

	return blocks
}

// scanOptionGroups is the last resort: every maximal run of exactly four
// consecutive option lines is assumed to be one question's options, and the
// text between consecutive runs is the stem of the question owning the run
// that follows it.
func scanOptionGroups(text string) []Block {
	lines := strings.Split(text, "\n")

	type run struct{ start, end int } // end exclusive

	var runs []run
	i := 0
	for i < len(lines) {
		if !isOptionLine(strings.TrimSpace(lines[i])) {
			i++
			continue
		}
		j := i
		for j < len(lines) && isOptionLine(strings.TrimSpace(lines[j])) {
			j++
		}
		if j-i == 4 {
			runs = append(runs, run{start: i, end: j})
		}
		i = j
	}

	if len(runs) == 0 {
		return nil
	}

	blocks := make([]Block, 0, len(runs))
	for n, r := range runs {
		stemStart := 0
		if n > 0 {
			stemStart = runs[n-1].end
		}

		rawEnd := len(lines)
		if n+1 < len(runs) {
			rawEnd = runs[n+1].start
		}

		text := strings.TrimSpace(strings.Join(lines[stemStart:r.end], "\n"))
		raw := strings.TrimSpace(strings.Join(lines[stemStart:rawEnd], "\n"))
		if len(text) == 0 {
			continue
		}

		blocks = append(blocks, Block{Text: text, Raw: raw})
	}

	return blocks
}
