// Package tutor answers course questions and generates quizzes over uploaded
// material. It wires the corpus store, the retriever, the throttled
// completion gateway, the quiz extractor and the conversation store into two
// top-level operations, Ask and GenerateQuiz.
package tutor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/w-h-a/tutor/corpus"
	"github.com/w-h-a/tutor/generator"
	"github.com/w-h-a/tutor/quiz"
	"github.com/w-h-a/tutor/retriever"
	"github.com/w-h-a/tutor/session"
)

// Answer is the result of one Ask call.
type Answer struct {
	Text      string              `json:"answer"`
	Sources   string              `json:"sources"`
	History   []generator.Message `json:"history"`
	SessionID string              `json:"session_id"`
}

type Tutor struct {
	options   Options
	store     *corpus.Store
	retriever *retriever.Retriever
	generator generator.Generator
	sessions  *session.Store
}

// Ingest replaces the active corpus with the given documents and returns the
// resulting chunk count.
func (t *Tutor) Ingest(ctx context.Context, docs []corpus.Document) (int, error) {
	return t.store.Ingest(ctx, docs)
}

// Clear drops the corpus, its persisted snapshots, and all conversations.
func (t *Tutor) Clear() error {
	t.sessions.Clear()
	return t.store.Clear()
}

// Ask answers one question inside a session. When the question is in-domain
// the answer is grounded in the best-matching chunks and Sources describes
// them; otherwise the model answers from general knowledge and Sources says
// so. The exchange is appended to the session either way.
func (t *Tutor) Ask(ctx context.Context, sessionID, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if len(question) == 0 {
		return Answer{}, fmt.Errorf("%w: question is empty", ErrInvalidRequest)
	}

	conv := t.sessions.GetOrCreate(sessionID)

	results, err := t.retriever.Retrieve(ctx, question, 0)
	if err != nil {
		return Answer{}, err
	}

	inDomain := false
	if t.store.Len() > 0 {
		inDomain, err = t.retriever.IsInDomain(ctx, question)
		if err != nil {
			return Answer{}, err
		}
	}

	var prompt, sources string

	if inDomain && len(results) > 0 {
		prompt = answerPrompt(question, retrievedContext(results))
		sources = retrievedSources(results)
	} else {
		prompt = answerPrompt(question, "")
		sources = generalKnowledgeNotice
	}

	messages := append(conv.History(t.options.HistoryWindow), generator.Message{
		Role:    generator.RoleUser,
		Content: prompt,
	})

	text, err := t.generator.Generate(ctx, messages)
	if err != nil {
		return Answer{}, err
	}

	conv.Append(question, text)

	log.Info().
		Str("session", conv.ID()).
		Bool("in_domain", inDomain).
		Int("chunks", len(results)).
		Msg("answered question")

	return Answer{
		Text:      text,
		Sources:   sources,
		History:   conv.History(t.options.HistoryWindow),
		SessionID: conv.ID(),
	}, nil
}

// GenerateQuiz produces n multiple-choice questions. Content, when given,
// overrides the corpus as the source material; otherwise chunks are packed
// greedily up to the context bound. Language selects the prompt, zh-TW by
// default. An extraction that finds nothing comes back as empty sequences,
// not an error.
func (t *Tutor) GenerateQuiz(ctx context.Context, content string, n int, language string) (quiz.Extraction, error) {
	if n < 1 || n > MaxQuizQuestions {
		return quiz.Extraction{}, fmt.Errorf("%w: num_questions must be between 1 and %d", ErrInvalidRequest, MaxQuizQuestions)
	}

	material := strings.TrimSpace(content)
	if len(material) == 0 {
		material = t.corpusContext()
		if len(material) == 0 {
			return quiz.Extraction{}, ErrMissingCorpus
		}
	} else {
		material = truncate(material, t.options.MaxContext)
	}

	text, err := t.generator.Generate(ctx, []generator.Message{{
		Role:    generator.RoleUser,
		Content: quizPrompt(language, n, material),
	}})
	if err != nil {
		return quiz.Extraction{}, err
	}

	ext := quiz.Extract(text)

	log.Info().
		Int("requested", n).
		Int("extracted", ext.Len()).
		Msg("generated quiz")

	return ext, nil
}

// corpusContext packs whole chunks, in order, until the next one would push
// the total past the context bound.
func (t *Tutor) corpusContext() string {
	snap := t.store.Snapshot()

	var b strings.Builder
	length := 0

	for _, chunk := range snap.Chunks {
		size := utf8.RuneCountInString(chunk.Text)
		if length+size+1 > t.options.MaxContext {
			break
		}
		b.WriteString(chunk.Text)
		b.WriteString("\n")
		length += size + 1
	}

	return b.String()
}

func retrievedContext(results []retriever.Result) string {
	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, res.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

func retrievedSources(results []retriever.Result) string {
	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, fmt.Sprintf("相似度 %.2f：%s", res.Score, res.Chunk.Text))
	}
	return "\n\n相關段落：\n" + strings.Join(parts, "\n---\n")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func New(store *corpus.Store, ret *retriever.Retriever, gen generator.Generator, sessions *session.Store, opts ...Option) *Tutor {
	if store == nil {
		panic("corpus store is required")
	}

	if ret == nil {
		panic("retriever is required")
	}

	if gen == nil {
		panic("generator is required")
	}

	if sessions == nil {
		panic("session store is required")
	}

	return &Tutor{
		options:   NewOptions(opts...),
		store:     store,
		retriever: ret,
		generator: gen,
		sessions:  sessions,
	}
}
