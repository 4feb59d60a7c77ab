package network

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// userTalkNamespace is the MediaWiki namespace number for user talk pages.
const userTalkNamespace = 3

var (
	// First edit to a section carries a leading "/* Section name */" marker.
	sectionMarkerRe = regexp.MustCompile(`^/\* (.*) \*/`)
	// Section-creating edits are formatted as "Section name [dd mon yyyy]".
	sectionSuffixRe = regexp.MustCompile(`^(.*)\[[^\]]*\]$`)
	// Talk page titles look like "User talk:Alice"; the owner follows the colon.
	talkOwnerRe = regexp.MustCompile(`^[^:]+:(.*)$`)
)

// ExtractSection recovers the section label an edit was made to from its
// comment. The leading "/* label */" marker wins over the trailing
// "[...]" form. Returns ok=false when no label can be extracted, including
// for an empty comment.
func ExtractSection(comment string) (string, bool) {
	if comment == "" {
		return "", false
	}
	if m := sectionMarkerRe.FindStringSubmatch(comment); m != nil {
		return strings.TrimRightFunc(m[1], unicode.IsSpace), true
	}
	if m := sectionSuffixRe.FindStringSubmatch(comment); m != nil {
		return strings.TrimRightFunc(m[1], unicode.IsSpace), true
	}
	return "", false
}

// IsTalkPage reports whether a namespace token denotes a talk page.
// Talk pages have odd-numbered namespaces. Tokens that do not parse as
// integers classify as "not talk" rather than failing; partial metadata is
// expected in real edit logs.
func IsTalkPage(namespace string) bool {
	ns, err := strconv.Atoi(strings.TrimSpace(namespace))
	if err != nil {
		return false
	}
	return ns%2 != 0
}

// TalkPageOwner returns the owning user of a user-talk page. Only namespace
// 3 pages have an owner; the owner is everything after the first colon in
// the title. Returns ok=false for other namespaces or titles without a
// colon.
func TalkPageOwner(namespace, title string) (string, bool) {
	ns, err := strconv.Atoi(strings.TrimSpace(namespace))
	if err != nil || ns != userTalkNamespace {
		return "", false
	}
	m := talkOwnerRe.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return m[1], true
}
