package docsearch

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SegmentedDocument is the result of segmenting one document's raw text.
type SegmentedDocument struct {
	// Checksum is the SHA-256 hex digest of the raw text, computed before
	// any preprocessing so any byte change is detected.
	Checksum string

	// Meta holds the document's scalar metadata, or nil if the document
	// declares none.
	Meta map[string]any

	// Sections are the heading-delimited fragments in document order.
	Sections []SegmentedSection
}

// SegmentedSection is one heading-delimited fragment.
type SegmentedSection struct {
	Slug    string
	Heading string

	// Content is the fragment's markdown, beginning with its heading line
	// (the first fragment of a document may have none).
	Content string
}

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	fenceRe      = regexp.MustCompile("^(```|~~~)")
	importRe     = regexp.MustCompile(`^\s*(import|export)\b`)
	jsxCommentRe = regexp.MustCompile(`\{/\*.*?\*/\}`)
	// Component tags start with an uppercase letter, which is what
	// distinguishes them from plain HTML in MDX.
	jsxTagLineRe   = regexp.MustCompile(`^\s*</?[A-Z][A-Za-z0-9.]*(\s[^>]*)?/?>\s*$`)
	jsxOpenLineRe  = regexp.MustCompile(`^\s*</?[A-Z][A-Za-z0-9.]*(\s[^>]*)?$`)
	jsxInlineTagRe = regexp.MustCompile(`</?[A-Z][A-Za-z0-9.]*(\s[^>]*?)?/?>`)
	metaOpenRe     = regexp.MustCompile(`export\s+const\s+meta\s*=\s*\{`)
	metaPairRe     = regexp.MustCompile(`(?m)['"]?([A-Za-z_][A-Za-z0-9_]*)['"]?\s*:\s*('(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"|true|false|-?\d+(?:\.\d+)?)`)
)

// Segment splits a document's raw markdown into heading-delimited sections,
// computes its content checksum, and extracts its metadata declaration.
// Embedded executable markup (import/export statements, component tags,
// expression comments) is stripped before splitting so only prose and
// structural content remains.
func Segment(raw string) (*SegmentedDocument, error) {
	sum := sha256.Sum256([]byte(raw))

	meta, err := extractMeta(raw)
	if err != nil {
		return nil, err
	}

	lines := stripEmbedded(raw)

	doc := &SegmentedDocument{
		Checksum: hex.EncodeToString(sum[:]),
		Meta:     meta,
	}

	// Partition lines into groups, starting a new group at every heading
	// outside a code fence. The heading line leads its own group.
	var groups [][]string
	var current []string
	inFence := false
	for _, line := range lines {
		if fenceRe.MatchString(line) {
			inFence = !inFence
		}
		if !inFence && headingRe.MatchString(line) {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = []string{line}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	slugger := newSlugger()
	for _, group := range groups {
		content := strings.TrimSpace(strings.Join(group, "\n"))
		if content == "" {
			continue
		}

		var heading, slug string
		if m := headingRe.FindStringSubmatch(group[0]); m != nil {
			heading = headingText(m[2])
			slug = slugger.slug(heading)
		}

		doc.Sections = append(doc.Sections, SegmentedSection{
			Slug:    slug,
			Heading: heading,
			Content: content,
		})
	}

	return doc, nil
}

// extractMeta returns the literal key/value pairs of the document's first
// meta declaration, or nil if the document has none. Only top-level scalar
// literals are captured; computed and nested values are dropped silently.
func extractMeta(raw string) (map[string]any, error) {
	loc := metaOpenRe.FindStringIndex(raw)
	if loc == nil {
		return nil, nil
	}

	// The declaration ends where its braces balance out, so a nested
	// object literal in the body never ends the capture early.
	depth := 1
	end := -1
	for i := loc[1]; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, Errorf(EINVALID, "unterminated meta declaration")
	}

	meta := make(map[string]any)
	for _, pair := range metaPairRe.FindAllStringSubmatch(topLevelBody(raw[loc[1]:end]), -1) {
		key, value := pair[1], pair[2]
		switch {
		case strings.HasPrefix(value, "'"), strings.HasPrefix(value, `"`):
			meta[key] = strings.Trim(value, `'"`)
		case value == "true":
			meta[key] = true
		case value == "false":
			meta[key] = false
		case strings.Contains(value, "."):
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			meta[key] = f
		default:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				continue
			}
			meta[key] = n
		}
	}
	if len(meta) == 0 {
		return nil, nil
	}
	return meta, nil
}

// topLevelBody blanks out nested brace groups in an object body so only the
// top-level pairs remain visible to the pair scanner.
func topLevelBody(body string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range body {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		default:
			if depth == 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// stripEmbedded removes executable markup from the document and returns the
// remaining lines. Code fences are left untouched so shell comments and
// source snippets survive verbatim.
func stripEmbedded(raw string) []string {
	var out []string
	inFence := false
	inTag := false
	skipDepth := 0

	for _, line := range strings.Split(raw, "\n") {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		// A component tag opened on an earlier line swallows its
		// attribute lines until the closing bracket.
		if inTag {
			if strings.Contains(line, ">") {
				inTag = false
			}
			continue
		}

		// Multi-line import/export statements are skipped until their
		// braces balance out.
		if skipDepth > 0 {
			skipDepth = max(skipDepth+braceDelta(line), 0)
			continue
		}
		if importRe.MatchString(line) {
			skipDepth = max(braceDelta(line), 0)
			continue
		}

		line = jsxCommentRe.ReplaceAllString(line, "")
		if jsxTagLineRe.MatchString(line) {
			continue
		}
		if jsxOpenLineRe.MatchString(line) {
			inTag = true
			continue
		}
		line = jsxInlineTagRe.ReplaceAllString(line, "")

		out = append(out, line)
	}

	return out
}

func braceDelta(line string) int {
	delta := 0
	for _, r := range line {
		switch r {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// headingText renders a heading's markdown as plain text: inline code
// markers, emphasis markers, and link targets are removed.
func headingText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("`", "", "*", "", "_", "").Replace(s)

	// [text](url) -> text
	linkRe := regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	s = linkRe.ReplaceAllString(s, "$1")

	return strings.TrimSpace(s)
}

// slugger derives URL-fragment-safe slugs from heading text, appending
// numeric suffixes to disambiguate repeated headings within one document.
type slugger struct {
	counts map[string]int
}

func newSlugger() *slugger {
	return &slugger{counts: make(map[string]int)}
}

func (s *slugger) slug(heading string) string {
	base := slugify(heading)

	if count, exists := s.counts[base]; exists {
		s.counts[base]++
		return base + "-" + strconv.Itoa(count)
	}
	s.counts[base] = 1
	return base
}

// slugify converts heading text to lowercase hyphenated form, dropping any
// character that is not a letter or digit.
func slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
