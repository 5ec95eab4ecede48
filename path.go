package docsearch

import (
	"regexp"
	"strings"
)

var orderPrefixRe = regexp.MustCompile(`^\d{2}-`)

// FormatPath transforms a raw filesystem path into the canonical page path:
// forward slashes, ordering-prefix numerals stripped from each segment, the
// document extension removed, and a trailing "index" segment dropped.
// It is a pure function of its input so the same file always maps to the
// same page.
//
//	docs\02-app\01-routing\08-parallel-routes.mdx -> docs/app/routing/parallel-routes
//	docs/guide/index.mdx                          -> docs/guide
func FormatPath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")

	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		out = append(out, orderPrefixRe.ReplaceAllString(segment, ""))
	}

	if len(out) > 0 {
		last := out[len(out)-1]
		if i := strings.LastIndex(last, "."); i > 0 {
			last = last[:i]
		}
		if last == "index" {
			out = out[:len(out)-1]
		} else {
			out[len(out)-1] = last
		}
	}

	return strings.Join(out, "/")
}
