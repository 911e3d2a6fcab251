// Package rag answers natural-language questions about the CRL corpus by
// retrieving relevant letters, prompting a generation model with them as
// grounding context, and attributing the answer back to the letters it drew
// on. Every answered question lands in the append-only audit log.
package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/opencrl/crlsearch/internal/llm"
	"github.com/opencrl/crlsearch/internal/quota"
	"github.com/opencrl/crlsearch/internal/retrieval"
	"github.com/opencrl/crlsearch/internal/storage"
)

// DefaultAskTopK is the number of letters retrieved as grounding context.
const DefaultAskTopK = 5

// NoMatchAnswer is returned when retrieval finds nothing relevant. This is a
// successful outcome with zero citations, not an error.
const NoMatchAnswer = "No relevant information was found in the letters for this question."

// Answer is a synthesized answer with its attribution.
type Answer struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Citations  []Citation `json:"citations"`
	Confidence float64    `json:"confidence"`
	Model      string     `json:"model"`
	AuditID    string     `json:"audit_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Retriever is the retrieval surface synthesis depends on.
type Retriever interface {
	Retrieve(ctx context.Context, mode retrieval.Mode, query string, k, offset int) (retrieval.Result, error)
}

// AuditLog records answered questions.
type AuditLog interface {
	AppendQA(rec storage.QARecord) (storage.QARecord, error)
}

// Synthesizer answers questions over the corpus.
type Synthesizer struct {
	retriever Retriever
	generator llm.Generator
	gate      quota.Gate
	audit     AuditLog
	topK      int
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithTopK sets how many letters are retrieved as grounding context.
func WithTopK(k int) SynthesizerOption {
	return func(s *Synthesizer) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithGate sets the usage gate in front of generation.
func WithGate(g quota.Gate) SynthesizerOption {
	return func(s *Synthesizer) { s.gate = g }
}

// WithAuditLog sets the audit log. A nil log disables auditing.
func WithAuditLog(a AuditLog) SynthesizerOption {
	return func(s *Synthesizer) { s.audit = a }
}

// NewSynthesizer creates a Synthesizer. By default there is no usage gate
// and no audit log.
func NewSynthesizer(retriever Retriever, generator llm.Generator, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		retriever: retriever,
		generator: generator,
		gate:      quota.Unlimited{},
		topK:      DefaultAskTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers a question. Retrieval always runs in semantic mode; a question
// with no relevant letters gets NoMatchAnswer with zero citations. The
// quota gate is consulted before retrieval so denied requests cost nothing.
func (s *Synthesizer) Ask(ctx context.Context, question string) (Answer, error) {
	if err := s.gate.Allow(ctx); err != nil {
		return Answer{}, err
	}

	result, err := s.retriever.Retrieve(ctx, retrieval.ModeSemantic, question, s.topK, 0)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieving context: %w", err)
	}

	if len(result.Matches) == 0 {
		ans := Answer{
			Question:   question,
			Answer:     NoMatchAnswer,
			Citations:  []Citation{},
			Confidence: 0,
			Model:      s.generator.ModelName(),
			CreatedAt:  time.Now().UTC(),
		}
		return s.record(ans)
	}

	prompt := buildPrompt(buildContext(result.Matches), question)
	completion, err := s.generator.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generating answer: %w", err)
	}

	citations := extractCitations(completion, result.Matches)
	scores := make([]float32, 0, len(citations))
	for _, c := range citations {
		scores = append(scores, c.Score)
	}

	ans := Answer{
		Question:   question,
		Answer:     completion,
		Citations:  citations,
		Confidence: confidence(scores),
		Model:      s.generator.ModelName(),
		CreatedAt:  time.Now().UTC(),
	}
	return s.record(ans)
}

// record appends the answer to the audit log. An audit failure fails the
// whole call: an unauditable answer must not be reported as answered.
func (s *Synthesizer) record(ans Answer) (Answer, error) {
	if s.audit == nil {
		return ans, nil
	}

	cited := make([]string, 0, len(ans.Citations))
	for _, c := range ans.Citations {
		cited = append(cited, c.ID)
	}

	rec, err := s.audit.AppendQA(storage.QARecord{
		Question:   ans.Question,
		Answer:     ans.Answer,
		CitedIDs:   cited,
		Model:      ans.Model,
		Confidence: ans.Confidence,
		CreatedAt:  ans.CreatedAt,
	})
	if err != nil {
		return Answer{}, fmt.Errorf("recording answer: %w", err)
	}

	ans.AuditID = rec.ID
	return ans, nil
}
