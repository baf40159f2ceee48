package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// Placeholder formats a variable name the way config templates spell it,
// ex. "contest_id" -> "{%contest_id%}".
func Placeholder(name string) string {
	return "{%" + name + "%}"
}

// Substitute replaces every {%key%} in `template` with vars[key].
// Unknown placeholders are left alone.
func Substitute(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, Placeholder(k), v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

type Match struct {
	Value      string
	Similarity float64
}

// BestMatch returns the candidate most similar to `target` by
// Jaro-Winkler distance over normalized names.
func BestMatch(target string, candidates []string) (Match, bool) {
	target = NormalizeName(target)

	var best Match
	for _, c := range candidates {
		similarity := matchr.JaroWinkler(target, NormalizeName(c), false)
		if similarity > best.Similarity {
			best = Match{Value: c, Similarity: similarity}
		}
	}
	return best, best.Similarity > 0
}
