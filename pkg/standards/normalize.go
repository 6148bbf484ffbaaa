package standards

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

var (
	nonWordRe = regexp.MustCompile(`[^a-z0-9%]+`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Normalizer folds parameter labels into a comparable form: lower case,
// punctuation replaced by spaces, '%' as a separate token, and every unit
// spelling replaced by its canonical unit.
type Normalizer struct {
	variants []unitVariant
}

type unitVariant struct {
	from, to string
}

// NewNormalizer creates a Normalizer from a canonical unit to spellings
// map. Longer spellings are replaced first.
func NewNormalizer(unitVariants map[string][]string) *Normalizer {
	res := &Normalizer{}
	for unit, spellings := range unitVariants {
		to := tokenize(unit)
		for _, v := range spellings {
			from := tokenize(v)
			if from == "" || from == to {
				continue
			}
			res.variants = append(res.variants, unitVariant{from: from, to: to})
		}
	}
	slices.SortFunc(res.variants, func(a, b unitVariant) int {
		if c := cmp.Compare(len(b.from), len(a.from)); c != 0 {
			return c
		}
		return cmp.Compare(a.from, b.from)
	})
	return res
}

// Normalize returns the folded form of a label.
func (n *Normalizer) Normalize(s string) string {
	res := tokenize(s)
	if res == "" || n == nil {
		return res
	}
	padded := " " + res + " "
	for _, v := range n.variants {
		padded = strings.ReplaceAll(padded, " "+v.from+" ", " "+v.to+" ")
	}
	return strings.TrimSpace(padded)
}

func tokenize(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "%", " % ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
