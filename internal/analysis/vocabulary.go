package analysis

import (
	"strings"

	"resumint/internal/bank"
)

// variant is one surface form that maps back to a canonical skill key.
type variant struct {
	Text string
	Key  string
}

// Vocabulary maps resume surface forms (skill keys, display names, and known
// aliases) to canonical bank keys. It is rebuilt whenever the bank reloads,
// so lookups never see a vocabulary out of sync with the bank.
type Vocabulary struct {
	variants []variant
	byText   map[string]string
}

// Aliases that appear in resumes but not in the bank itself.
var skillAliases = map[string][]string{
	"python":     {"python3", "python 3"},
	"javascript": {"js", "node"},
	"nodejs":     {"node.js", "node"},
}

// NewVocabulary builds the variant table from a bank. Variants keep bank
// entry order so detection output is deterministic.
func NewVocabulary(b *bank.Bank) *Vocabulary {
	v := &Vocabulary{
		byText: make(map[string]string),
	}

	for _, key := range b.Keys() {
		entry, _ := b.Lookup(key)
		v.add(strings.ToLower(entry.Skill), key)
		v.add(strings.ToLower(entry.DisplayName), key)
		for _, alias := range skillAliases[key] {
			v.add(alias, key)
		}
	}

	return v
}

func (v *Vocabulary) add(text, key string) {
	if _, exists := v.byText[text]; exists {
		return
	}
	v.byText[text] = key
	v.variants = append(v.variants, variant{Text: text, Key: key})
}

// Variants returns all surface forms in deterministic order.
func (v *Vocabulary) Variants() []variant {
	return v.variants
}

// Canonical resolves a surface form to its bank key.
func (v *Vocabulary) Canonical(text string) (string, bool) {
	key, ok := v.byText[strings.ToLower(text)]
	return key, ok
}
