package enums

import (
	"fmt"
	"strings"
)

// ContentClassification is a content rating, ordered from least to most restricted.
type ContentClassification string

const (
	ClassificationG    ContentClassification = "G"
	ClassificationPG   ContentClassification = "PG"
	ClassificationPG13 ContentClassification = "PG13"
	ClassificationR    ContentClassification = "R"
	ClassificationNC17 ContentClassification = "NC17"
)

var validClassifications = []ContentClassification{
	ClassificationG,
	ClassificationPG,
	ClassificationPG13,
	ClassificationR,
	ClassificationNC17,
}

var minimumAges = map[ContentClassification]int{
	ClassificationG:    0,
	ClassificationPG:   7,
	ClassificationPG13: 13,
	ClassificationR:    17,
	ClassificationNC17: 18,
}

func AllContentClassifications() []ContentClassification {
	return append([]ContentClassification(nil), validClassifications...)
}

func (c ContentClassification) String() string {
	return string(c)
}

func (c ContentClassification) IsValid() bool {
	_, ok := minimumAges[c]
	return ok
}

// Rank is the position of c in the restriction order, or -1 when unknown.
func (c ContentClassification) Rank() int {
	for i, candidate := range validClassifications {
		if candidate == c {
			return i
		}
	}
	return -1
}

// MinimumAge is the youngest viewer age allowed for c.
func (c ContentClassification) MinimumAge() int {
	if age, ok := minimumAges[c]; ok {
		return age
	}
	return minimumAges[ClassificationNC17]
}

// Permits reports whether a profile capped at c may watch content rated other.
func (c ContentClassification) Permits(other ContentClassification) bool {
	if !c.IsValid() || !other.IsValid() {
		return false
	}
	return other.Rank() <= c.Rank()
}

// MaxForAge returns the most permissive classification an age qualifies for.
func MaxForAge(age int) ContentClassification {
	best := ClassificationG
	for _, candidate := range validClassifications {
		if age >= minimumAges[candidate] {
			best = candidate
		}
	}
	return best
}

// ParseContentClassification accepts the canonical values plus the hyphenated
// forms ("PG-13", "NC-17").
func ParseContentClassification(value string) (ContentClassification, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", ""))
	for _, candidate := range validClassifications {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid content classification %q", value)
}
