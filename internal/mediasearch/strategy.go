package mediasearch

import (
	"strings"

	"github.com/palacelab/cardgen/internal/keywords"
)

// DefaultMaxAttempts bounds how many query strings one search may try.
const DefaultMaxAttempts = 6

// qualifiers broaden the primary keyword query one descriptive angle at a
// time. Ordered roughly by how often each wording surfaces usable files.
var qualifiers = []string{
	"diagram",
	"illustration",
	"example",
	"chart",
	"photo",
	"symbol",
	"logo",
}

// Strategies produces the ordered query sequence for a topic, most
// specific first: the verbatim topic, the top one or two keywords joined,
// that primary query combined with each qualifier, and finally the
// leading keyword alone. Duplicate queries are skipped and the sequence
// never exceeds budget entries.
func Strategies(topic string, budget int) []string {
	if budget <= 0 {
		budget = DefaultMaxAttempts
	}

	topic = strings.TrimSpace(topic)
	kws := keywords.Extract(topic)

	seen := make(map[string]bool)
	var out []string
	add := func(q string) {
		if q == "" || seen[q] || len(out) >= budget {
			return
		}
		seen[q] = true
		out = append(out, q)
	}

	add(topic)

	primary := topic
	if len(kws) > 0 {
		n := len(kws)
		if n > 2 {
			n = 2
		}
		primary = strings.Join(kws[:n], " ")
	}
	add(primary)

	if primary != "" {
		for _, q := range qualifiers {
			add(primary + " " + q)
		}
	}

	if len(kws) > 2 {
		add(kws[0])
	}

	return out
}
