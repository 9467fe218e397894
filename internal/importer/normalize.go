package importer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDurationRe  = regexp.MustCompile(`(?i)PT(?:(\d+)H)?(?:(\d+)M)?`)
	hourPhraseRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:stunden?|std|h)\b`)
	minutePhraseRe = regexp.MustCompile(`(?i)(\d+)\s*(?:minuten?|min|m)\b`)
	bareNumberRe   = regexp.MustCompile(`\d+`)
	byAuthorRe     = regexp.MustCompile(`(?i)(?:\s+von\s+\S+)+$`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// ParseTime converts a duration string into whole minutes. It understands
// ISO-8601 durations ("PT1H30M"), German phrases ("1 Stunde 30 Minuten",
// "15 Min.") and falls back to the first bare number. Unparseable input
// yields 0, never an error.
func ParseTime(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m := isoDurationRe.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		return atoiOrZero(m[1])*60 + atoiOrZero(m[2])
	}

	minutes := 0
	matched := false
	if m := hourPhraseRe.FindStringSubmatch(s); m != nil {
		minutes += atoiOrZero(m[1]) * 60
		matched = true
	}
	if m := minutePhraseRe.FindStringSubmatch(s); m != nil {
		minutes += atoiOrZero(m[1])
		matched = true
	}
	if matched {
		return minutes
	}

	if m := bareNumberRe.FindString(s); m != "" {
		return atoiOrZero(m)
	}
	return 0
}

// CleanTitle strips a trailing "von <author>" suffix and surrounding
// whitespace from an extracted recipe title.
func CleanTitle(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(byAuthorRe.ReplaceAllString(strings.TrimSpace(s), ""))
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func firstInt(s string, fallback int) int {
	if m := bareNumberRe.FindString(s); m != "" {
		return atoiOrZero(m)
	}
	return fallback
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
