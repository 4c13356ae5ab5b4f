// CLAUDE:SUMMARY Classification service shared by HTTP and MCP: featurizes a query like a test utterance, ranks it with the locale model, applies the "None" fallback.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/eval"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
	"github.com/hazyhaar/massive-bench/pkg/processor"
)

// ErrUnknownLocale is returned when no model is loaded for the locale.
var ErrUnknownLocale = errors.New("no model loaded for locale")

// ClassifyResult is the answer for one utterance.
type ClassifyResult struct {
	Locale string                      `json:"locale"`
	Text   string                      `json:"text"`
	Intent string                      `json:"intent"`
	Ranked []classifier.Classification `json:"ranked"`
}

// Service ranks utterances with the models of a registry.
type Service struct {
	models   *classifier.Registry
	procs    *processor.Registry
	fallback string
}

// NewService returns a Service. fallback replaces a top-ranked "None" in
// ClassifyResult.Intent; empty keeps "None".
func NewService(models *classifier.Registry, procs *processor.Registry, fallback string) *Service {
	return &Service{models: models, procs: procs, fallback: fallback}
}

// Models returns the registry the service reads from.
func (s *Service) Models() *classifier.Registry {
	return s.models
}

// Classify ranks text with the model of locale.
func (s *Service) Classify(ctx context.Context, locale, text string) (*ClassifyResult, error) {
	m, ok := s.models.Get(locale)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	proc, err := s.procs.Get(locale)
	if err != nil {
		return nil, err
	}

	ranked, err := m.Run(ctx, pipeline.Featurize(proc)(text))
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", locale, err)
	}
	return &ClassifyResult{
		Locale: locale,
		Text:   text,
		Intent: eval.TopIntent(ranked, s.fallback),
		Ranked: ranked,
	}, nil
}
