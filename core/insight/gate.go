package insight

import (
	"errors"
	"strings"
)

var errNoGenerator = errors.New("no generator configured")

// Quality gate limits.
const (
	minGeneratedLength = 10
	maxSentenceMarks   = 5
	maxLeadRepeats     = 2
	leadTokens         = 3
)

// PassesQualityGate reports whether generated text is fit to show.
// Text must be at least 10 characters once trimmed, hold at most five periods,
// and none of its first three words may occur more than twice in the text.
func PassesQualityGate(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minGeneratedLength {
		return false
	}
	if strings.Count(trimmed, ".") > maxSentenceMarks {
		return false
	}
	words := strings.Fields(trimmed)
	for i := 0; i < len(words) && i < leadTokens; i++ {
		if strings.Count(trimmed, words[i]) > maxLeadRepeats {
			return false
		}
	}
	return true
}
