package techspec

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KnownHeadings are the section names used by the datasheets we quote from.
// The order matters: when a line contains several of them, the first entry
// in this list wins, not the longest or most specific one.
var KnownHeadings = []string{
	"Heat Recovery",
	"Drive Module",
	"Process Data Interfaces",
	"Control and Visualization",
	"Technical Data",
	"Energy Efficiency",
	"Dimensions",
	"Performance Features",
	"Safety Devices",
}

// numberedHeading matches "3. Something" style titles.
var numberedHeading = regexp.MustCompile(`^\d+\.\s+[A-Z]`)

// FindTitle returns the section title for the first line of text that
// mentions keyword. See Document.Title.
func FindTitle(text, keyword string) (string, bool) {
	return NewDocument(text).Title(keyword)
}

// Title locates the first raw line containing keyword (case-insensitive)
// and scans upward, including that line, for the nearest heading.
//
// A line containing one of KnownHeadings returns that vocabulary entry.
// Otherwise a line that looks like a heading (see IsHeadingLike) is returned
// trimmed. The second result is false when the keyword never appears or no
// line at or above it qualifies.
func (d *Document) Title(keyword string) (string, bool) {
	needle := strings.ToLower(trimSpace(keyword))
	if needle == "" {
		return "", false
	}

	start := -1
	for i, line := range d.lines {
		if strings.Contains(strings.ToLower(line), needle) {
			start = i
			break
		}
	}
	if start == -1 {
		return "", false
	}

	for i := start; i >= 0; i-- {
		line := trimSpace(d.lines[i])

		if heading, ok := knownHeadingIn(line); ok {
			return heading, true
		}
		if IsHeadingLike(line) {
			return line, true
		}
	}
	return "", false
}

// knownHeadingIn returns the first vocabulary entry contained in line.
// The comparison is case-sensitive.
func knownHeadingIn(line string) (string, bool) {
	for _, heading := range KnownHeadings {
		if strings.Contains(line, heading) {
			return heading, true
		}
	}
	return "", false
}

// IsHeadingLike reports whether a trimmed line is formatted like a title:
// either short and already upper-case (4 to 29 characters), or a numbered
// title such as "2. Installation" shorter than 50 characters.
//
// Lines without letters, like "2024" or "----", count as upper-case.
// Upper-casing uses full case mapping, so "MAßE" (upper "MASSE") is not
// considered upper-case.
func IsHeadingLike(line string) bool {
	n := utf8.RuneCountInString(line)

	// A Caser keeps state; it must not be shared between goroutines.
	if line == cases.Upper(language.Und).String(line) && n > 3 && n < 30 {
		return true
	}
	return numberedHeading.MatchString(line) && n < 50
}
