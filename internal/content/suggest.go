package content

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion
const maxSuggestDistance = 3

// unknownFieldPattern matches yaml.v3's strict-decoding message, e.g.
// "line 9: field linkdin not found in type content.Record"
var unknownFieldPattern = regexp.MustCompile(`field (\S+) not found in type content\.(\w+)`)

var knownKeys = map[string][]string{
	"Record":       yamlKeys(reflect.TypeOf(Record{})),
	"ProjectEntry": yamlKeys(reflect.TypeOf(ProjectEntry{})),
}

func yamlKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("yaml"), ",", 2)[0]
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

// Suggest returns the known key closest to key, if any is close enough
func Suggest(key string, known []string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, k := range known {
		if d := levenshtein.ComputeDistance(strings.ToLower(key), k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, best != ""
}

// unknownFieldHints turns strict-decoding errors into "did you mean" hints
func unknownFieldHints(err error) string {
	var hints []string
	for _, m := range unknownFieldPattern.FindAllStringSubmatch(err.Error(), -1) {
		if s, ok := Suggest(m[1], knownKeys[m[2]]); ok {
			hints = append(hints, fmt.Sprintf("did you mean %q instead of %q?", s, m[1]))
		}
	}
	return strings.Join(hints, " ")
}
