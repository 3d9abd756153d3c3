// Package quiz recovers structured multiple-choice records from the free-form
// text a completion model returns. The model output follows no enforced
// grammar, so extraction is a cascade of increasingly permissive strategies
// over pre-cleaned text.
package quiz

import "fmt"

// Question is one extracted item: a stem plus exactly four options labeled
// A through D. Short option lists are padded, never rejected.
type Question struct {
	ID      int      `json:"id"`
	Stem    string   `json:"question"`
	Options []string `json:"options"`
}

// Extraction is the aligned output of Extract: Questions, Answers and
// Explanations always have the same length, and every answer is a single
// letter in A-D.
type Extraction struct {
	Questions    []Question `json:"questions"`
	Answers      []string   `json:"answers"`
	Explanations []string   `json:"explanations"`
}

func (e Extraction) Len() int {
	return len(e.Questions)
}

// Extract parses one block of completion text into structured quiz records.
// IDs are reassigned 1-based in encounter order regardless of any numbering
// in the source, since generated numbering may repeat or jump. When nothing
// recognizable is found the three sequences are simply empty; Extract never
// fails.
func Extract(text string) Extraction {
	ext := Extraction{
		Questions:    []Question{},
		Answers:      []string{},
		Explanations: []string{},
	}

	cleaned := stripAnswerLeaks(stripPreamble(text))

	for _, block := range segment(cleaned) {
		item, ok := parseBlock(block)
		if !ok {
			continue
		}

		id := len(ext.Questions) + 1

		if len(item.explanation) == 0 {
			item.explanation = fmt.Sprintf("第 %d 題的正確答案為 %s。", id, item.answer)
		}

		ext.Questions = append(ext.Questions, Question{
			ID:      id,
			Stem:    item.stem,
			Options: item.options,
		})
		ext.Answers = append(ext.Answers, item.answer)
		ext.Explanations = append(ext.Explanations, item.explanation)
	}

	return ext
}
