package symbol

import "strings"

// Suffixes tried when proposing alternate spellings of a failed lookup.
// Ordered by how often a European retail security is actually listed there.
var (
	majorSuffixes    = []string{"DE", "L", "PA", "TO"}
	europeanSuffixes = []string{"DE", "F", "L", "PA", "AS"}
)

// SuggestAlternateFormats proposes identifiers a user could try when a
// lookup fails. A suffixed identifier yields the bare symbol plus other
// major venues; a bare one yields the major European venues. The original
// identifier is never part of the result and duplicates are dropped while
// preserving order. ISINs have no plausible alternate spelling.
func SuggestAlternateFormats(identifier string) []string {
	id := strings.ToUpper(strings.TrimSpace(identifier))
	if id == "" || IsISIN(id) {
		return nil
	}

	base, suffix := splitSuffix(id)
	if base == "" {
		return nil
	}

	var candidates []string
	if suffix != "" {
		candidates = append(candidates, base)
		for _, s := range majorSuffixes {
			candidates = append(candidates, base+"."+s)
		}
	} else {
		for _, s := range europeanSuffixes {
			candidates = append(candidates, base+"."+s)
		}
	}

	out := make([]string, 0, len(candidates))
	seen := map[string]struct{}{id: {}}
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
