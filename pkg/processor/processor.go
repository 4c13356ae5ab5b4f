// CLAUDE:SUMMARY Locale text processors: registry keyed by base language with a default Unicode tokenizer (NFKC, configurable casing, script-aware splitting).
package processor

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/hazyhaar/massive-bench/pkg/textnorm"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Func turns raw text into tokens.
type Func func(text string) []string

// Factory builds the Func of a locale.
type Factory func(tag language.Tag, opts Options) Func

// Options tune the default tokenizer.
type Options struct {
	// Normalizer is the casing mode (textnorm.CaseLocale, CaseFold,
	// CaseSimple, CaseKeep); empty means CaseLocale.
	Normalizer string `yaml:"normalizer"`
}

// Validate rejects an unknown normalizer mode.
func (o Options) Validate() error {
	_, err := textnorm.GetNormalizer(o.Normalizer, language.Und)
	return err
}

// Registry resolves a locale to its processor. Locales whose base language
// has no registered factory use Tokenizer.
type Registry struct {
	mu        sync.RWMutex
	factories map[language.Base]Factory
	opts      Options
}

// NewRegistry returns a registry backed by the default tokenizer. Options
// are checked by Get.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		factories: make(map[language.Base]Factory),
		opts:      opts,
	}
}

// Register sets the factory used for every locale of base language lang
// (e.g. "ja").
func (r *Registry) Register(lang string, f Factory) error {
	base, err := language.ParseBase(lang)
	if err != nil {
		return fmt.Errorf("register processor %q: %w", lang, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[base] = f
	return nil
}

// Get returns the processor of locale (e.g. "en-US").
func (r *Registry) Get(locale string) (Func, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, fmt.Errorf("processor for %q: %w", locale, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("processor for %q: %w", locale, err)
	}
	base, _ := tag.Base()

	r.mu.RLock()
	f, ok := r.factories[base]
	r.mu.RUnlock()
	if !ok {
		f = Tokenizer
	}
	return f(tag, r.opts), nil
}

// Joined adapts fn to a string-to-string function that rejoins its tokens
// with single spaces.
func Joined(fn Func) func(string) string {
	return func(s string) string {
		return strings.Join(fn(s), " ")
	}
}

// Tokenizer is the default Factory: NFKC, the configured casing mode
// (lowercasing with the rules of tag's language by default), then splitting
// into runs of letters, digits, marks, underscores and apostrophes. Runes of
// scripts written without spaces become single-rune tokens. An unknown mode
// falls back to the default.
func Tokenizer(tag language.Tag, opts Options) Func {
	casing, err := textnorm.GetNormalizer(opts.Normalizer, tag)
	if err != nil {
		casing, _ = textnorm.GetNormalizer(textnorm.CaseLocale, tag)
	}
	return func(text string) []string {
		return split(casing(norm.NFKC.String(text)))
	}
}

var unsegmented = []*unicode.RangeTable{
	unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Thai,
	unicode.Lao, unicode.Khmer, unicode.Myanmar,
}

func split(s string) []string {
	tokens := []string{}
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsOneOf(unsegmented, r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r), r == '_', r == '\'':
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
