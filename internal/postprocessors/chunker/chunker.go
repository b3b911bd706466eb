// Package chunker provides sentence-aware text chunking with overlap.
package chunker

import (
	"strings"
	"unicode"
)

// DefaultChunkSize is the default target window size in characters.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default overlap between windows in characters.
const DefaultChunkOverlap = 100

// Abbreviations that end with a period but do not end a sentence.
var abbreviations = map[string]struct{}{
	"dr":   {},
	"mr":   {},
	"mrs":  {},
	"ms":   {},
	"prof": {},
	"sr":   {},
	"jr":   {},
	"st":   {},
	"vs":   {},
	"etc":  {},
	"e.g":  {},
	"i.e":  {},
	"fig":  {},
	"no":   {},
	"u.s":  {},
	"inc":  {},
	"ltd":  {},
}

// Splitter cuts text into sentence-respecting windows of a target size
// with a configured overlap. Splitting is deterministic and side-effect
// free: the same input and configuration always yield the same windows.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the target window size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay below the window size or windows never advance.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split cuts text into ordered windows. Sentences are never broken: a
// single sentence longer than the target size is emitted whole rather
// than truncated. Empty or whitespace-only input yields no windows.
func (s *Splitter) Split(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var (
		chunks  []string
		current []string
		length  int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))

		// Seed the next window with trailing sentences of this one
		// until the configured overlap is covered.
		var seed []string
		seedLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			if seedLen >= s.overlap {
				break
			}
			seed = append([]string{current[i]}, seed...)
			seedLen += len(current[i]) + 1
		}
		// Never carry the whole window forward, or splitting stalls.
		if len(seed) == len(current) {
			seed = seed[1:]
		}
		current = seed
		length = joinedLen(seed)
	}

	for _, sentence := range sentences {
		added := len(sentence)
		if len(current) > 0 {
			added++ // joining space
		}
		if len(current) > 0 && length+added > s.chunkSize {
			flush()
			added = len(sentence)
			if len(current) > 0 {
				added++
			}
		}
		current = append(current, sentence)
		length += added
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

func joinedLen(parts []string) int {
	if len(parts) == 0 {
		return 0
	}
	n := len(parts) - 1
	for _, p := range parts {
		n += len(p)
	}
	return n
}

// splitSentences segments text on sentence terminators, skipping
// terminators that belong to common abbreviations or initials.
func splitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	var (
		sentences []string
		start     int
	)
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// A terminator only ends a sentence before whitespace or EOF.
		if i+1 < len(runes) && runes[i+1] != ' ' {
			continue
		}
		if r == '.' && isAbbreviation(runes[start:i]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

// isAbbreviation reports whether the word preceding a period is a known
// abbreviation or a single-letter initial.
func isAbbreviation(before []rune) bool {
	end := len(before)
	begin := end
	for begin > 0 && before[begin-1] != ' ' {
		begin--
	}
	word := strings.ToLower(string(before[begin:end]))
	if word == "" {
		return false
	}
	if len(word) == 1 && unicode.IsLetter(rune(word[0])) {
		return true
	}
	_, ok := abbreviations[word]
	return ok
}
