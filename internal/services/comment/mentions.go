package comment

import (
	"unicode"
	"unicode/utf8"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// ParseMentions finds the team members named after an @ in content. At each
// @ the longest display name that matches case-insensitively and ends at a
// word boundary wins. Each member is reported once, in first-seen order.
func ParseMentions(content string, members []models.TeamMember) []models.Mention {
	mentions := []models.Mention{}
	seen := make(map[string]bool)

	for i := 0; i < len(content); i++ {
		if content[i] != '@' {
			continue
		}
		rest := content[i+1:]

		var best *models.TeamMember
		bestLen := 0
		for j := range members {
			n, ok := foldPrefix(rest, members[j].DisplayName)
			if !ok || !atBoundary(rest[n:]) {
				continue
			}
			if n > bestLen {
				best, bestLen = &members[j], n
			}
		}

		if best != nil && !seen[best.ID] {
			seen[best.ID] = true
			mentions = append(mentions, models.Mention{UserID: best.ID, UserName: best.DisplayName})
		}
	}
	return mentions
}

// foldPrefix reports whether s begins with prefix under simple case folding
// and returns how many bytes of s the match covers. The two may differ in
// byte length, as with the Kelvin sign and k.
func foldPrefix(s, prefix string) (int, bool) {
	if prefix == "" {
		return 0, false
	}
	n := 0
	for prefix != "" {
		if n == len(s) {
			return 0, false
		}
		sr, sw := utf8.DecodeRuneInString(s[n:])
		pr, pw := utf8.DecodeRuneInString(prefix)
		if !foldEqual(sr, pr) {
			return 0, false
		}
		n += sw
		prefix = prefix[pw:]
	}
	return n, true
}

func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// atBoundary reports whether s starts with something that cannot continue a name
func atBoundary(s string) bool {
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s)
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
