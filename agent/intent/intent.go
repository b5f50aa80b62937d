package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

var (
	orderKeywords   = []string{"cancel", "order", "refund", "return"}
	productKeywords = []string{"dress", "product", "size", "wedding", "find", "recommend"}
)

// Fallback classifies by keyword presence. Order keywords win over product ones.
func Fallback(text string) contractx.Intent {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, orderKeywords):
		return contractx.IntentOrderHelp
	case containsAny(lower, productKeywords):
		return contractx.IntentProductAssist
	default:
		return contractx.IntentOther
	}
}

// Normalize maps a raw label to a known intent, tolerating case, whitespace and
// surrounding quotes or punctuation.
func Normalize(raw string) (contractx.Intent, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, "\"'`.,;: \n\t")
	in := contractx.Intent(label)
	return in, in.Valid()
}

// Resolve asks the classifier and falls back to keywords when it is absent,
// fails, or answers outside the vocabulary.
func Resolve(ctx context.Context, classifier contractx.Classifier, text string) contractx.Intent {
	logger := zerolog.Ctx(ctx)
	if classifier == nil {
		return Fallback(text)
	}

	raw, err := classify(ctx, classifier, text)
	if err != nil {
		in := Fallback(text)
		logger.Warn().Err(err).Str("intent", string(in)).Msg("classifier failed, using keyword fallback")
		return in
	}

	if in, ok := Normalize(string(raw)); ok {
		return in
	}

	in := Fallback(text)
	logger.Warn().Str("label", string(raw)).Str("intent", string(in)).Msg("classifier label out of vocabulary, using keyword fallback")
	return in
}

// classify turns a classifier panic into an error so the caller can fall back.
func classify(ctx context.Context, classifier contractx.Classifier, text string) (out contractx.Intent, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: classifier panic: %v", contractx.ErrModelInvoke, r)
		}
	}()
	return classifier.Classify(ctx, text)
}

var _ contractx.Classifier = (*ModelClassifier)(nil)

// ModelClassifier asks a text Generator for the intent label.
type ModelClassifier struct {
	gen    contractx.Generator
	prompt string
}

func NewModelClassifier(gen contractx.Generator, systemPrompt string) (*ModelClassifier, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: router prompt is empty", contractx.ErrValidation)
	}
	return &ModelClassifier{gen: gen, prompt: systemPrompt}, nil
}

func (c *ModelClassifier) Classify(ctx context.Context, text string) (contractx.Intent, error) {
	out, err := c.gen.Generate(ctx, c.prompt, "USER MESSAGE: "+text)
	if err != nil {
		return "", fmt.Errorf("%w: classify: %v", contractx.ErrModelInvoke, err)
	}
	return contractx.Intent(strings.TrimSpace(out)), nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
