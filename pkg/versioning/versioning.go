// Package versioning orders Maven version strings for release listings.
//
// Maven has no single canonical ordering for the version strings that
// show up in doc stores and release directories (2.1.0, 2.1.0-rc1,
// 2.1.0-SNAPSHOT, ...). This package compares versions segment by
// segment: dotted and hyphenated segments are compared numerically when
// both sides are all digits, lexically otherwise, and numeric segments
// always sort ahead of qualifier segments.
package versioning

import (
	"sort"
	"strings"
)

// Comparison is the result of comparing two version strings.
type Comparison int

const (
	ComparisonLess Comparison = iota
	ComparisonEqual
	ComparisonGreater
)

type segment struct {
	numeric bool
	raw     string
}

// key splits a version string into comparable segments. Both '.' and
// '-' act as separators, so "1.0-rc-1" yields four segments. Empty
// segments are preserved and compare as non-numeric.
func key(v string) []segment {
	parts := strings.Split(strings.ReplaceAll(v, "-", "."), ".")
	segs := make([]segment, len(parts))
	for i, p := range parts {
		segs[i] = segment{numeric: isNumeric(p), raw: p}
	}
	return segs
}

// Compare orders version a against version b. Numeric segments compare
// as unbounded integers, mixed segments put the numeric side first, and
// a version that is a prefix of another sorts before it.
func Compare(a, b string) Comparison {
	as := key(a)
	bs := key(b)

	limit := len(as)
	if len(bs) < limit {
		limit = len(bs)
	}

	for i := 0; i < limit; i++ {
		if c := compareSegments(as[i], bs[i]); c != ComparisonEqual {
			return c
		}
	}

	if len(as) < len(bs) {
		return ComparisonLess
	}
	if len(as) > len(bs) {
		return ComparisonGreater
	}
	return ComparisonEqual
}

func compareSegments(a, b segment) Comparison {
	if a.numeric != b.numeric {
		if a.numeric {
			return ComparisonLess
		}
		return ComparisonGreater
	}

	if a.numeric {
		return compareNumeric(a.raw, b.raw)
	}

	switch cmp := strings.Compare(a.raw, b.raw); {
	case cmp < 0:
		return ComparisonLess
	case cmp > 0:
		return ComparisonGreater
	default:
		return ComparisonEqual
	}
}

// compareNumeric compares two all-digit strings as integers without an
// integer conversion, so arbitrarily long segments cannot overflow.
// Leading zeros are insignificant ("007" equals "7").
func compareNumeric(a, b string) Comparison {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return ComparisonLess
		}
		return ComparisonGreater
	}
	switch cmp := strings.Compare(a, b); {
	case cmp < 0:
		return ComparisonLess
	case cmp > 0:
		return ComparisonGreater
	default:
		return ComparisonEqual
	}
}

// Less reports whether version a orders before version b.
func Less(a, b string) bool {
	return Compare(a, b) == ComparisonLess
}

// SortDescending returns a copy of versions sorted newest first.
func SortDescending(versions []string) []string {
	if len(versions) == 0 {
		return nil
	}
	items := append([]string(nil), versions...)
	sort.SliceStable(items, func(i, j int) bool {
		return Compare(items[i], items[j]) == ComparisonGreater
	})
	return items
}

// IsSnapshot reports whether a version string uses the Maven snapshot
// convention.
func IsSnapshot(v string) bool {
	return strings.HasSuffix(strings.TrimSpace(v), "-SNAPSHOT")
}

// IsVersionLike reports whether a name starts with an ASCII digit, the
// shape release directories have in a doc store.
func IsVersionLike(name string) bool {
	return name != "" && name[0] >= '0' && name[0] <= '9'
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
