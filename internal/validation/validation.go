package validation

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MaxMessageRunes   = 5000
	PreviewRunes      = 200
	MaxGroupNameRunes = 200
	MaxGroupEmojiRune = 16

	DefaultPageSize = 50
	MaxPageSize     = 100
)

// NormalizeContent trims the message body and reports whether its length is
// within [1, max] characters.
func NormalizeContent(content string, max int) (string, bool) {
	if max <= 0 || max > MaxMessageRunes {
		max = MaxMessageRunes
	}
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	return content, n >= 1 && n <= max
}

// Preview cuts s to at most PreviewRunes characters without splitting a rune.
func Preview(s string) string {
	return TruncateRunes(s, PreviewRunes)
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	i := 0
	for pos := range s {
		if i == max {
			return s[:pos]
		}
		i++
	}
	return s
}

func NormalizeGroupName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return name, n >= 1 && n <= MaxGroupNameRunes
}

// NormalizeGroupEmoji returns nil for an empty emoji.
func NormalizeGroupEmoji(emoji string) (*string, bool) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, true
	}
	if utf8.RuneCountInString(emoji) > MaxGroupEmojiRune {
		return nil, false
	}
	return &emoji, true
}

// ParticipantSet returns the sorted, deduplicated union of ids and creator,
// dropping zero ids. A zero creator contributes nothing.
func ParticipantSet(creator uint, ids []uint) []uint {
	seen := map[uint]struct{}{0: {}}
	out := make([]uint, 0, len(ids)+1)
	if creator != 0 {
		seen[creator] = struct{}{}
		out = append(out, creator)
	}
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MinParticipants is evaluated once on the normalized set.
func MinParticipants(set []uint, min int) bool {
	return len(set) >= min
}

// ClampLimit applies the default page size to non-positive values and caps at max.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// EscapeLike escapes LIKE wildcards so user input matches literally with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ContainsPattern builds a lower-cased, escaped substring pattern.
// A blank query yields "".
func ContainsPattern(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return "%" + EscapeLike(strings.ToLower(query)) + "%"
}
