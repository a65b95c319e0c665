package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultReferencePrefix tags references minted by this store.
const DefaultReferencePrefix = "NEXA"

const suffixLength = 9

// Generator mints transaction references of the form
// <PREFIX>_<unix-millis>_<random-suffix>, uppercased. The timestamp makes
// references distinguishable across calls, the random suffix makes them
// collision-resistant across concurrent calls. A reference is never reused:
// every initiation attempt, including user-driven retries, mints a new one.
type Generator struct {
	now    func() time.Time
	suffix func() string
}

// GeneratorOption customizes a Generator, used by tests to pin the clock
// or the randomness source.
type GeneratorOption func(*Generator)

func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

func WithSuffix(suffix func() string) GeneratorOption {
	return func(g *Generator) { g.suffix = suffix }
}

// NewGenerator creates a reference generator with a real clock and a
// UUID-derived random suffix.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		now:    time.Now,
		suffix: randomSuffix,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate mints a new reference under the given prefix. An empty prefix
// falls back to DefaultReferencePrefix.
func (g *Generator) Generate(prefix string) string {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	ref := fmt.Sprintf("%s_%d_%s", prefix, g.now().UnixMilli(), g.suffix())
	return strings.ToUpper(ref)
}

func randomSuffix() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw[:suffixLength]
}
