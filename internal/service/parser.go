package service

import (
	"strings"

	"github.com/gopaska/lookbot/internal/domain"
)

// markers maps the field spellings the model has been observed to produce to
// their dimension. Matching is case-insensitive; both English prompt keys and
// Ukrainian/Russian paraphrases are accepted.
var markers = map[string]domain.Dimension{
	"category":  domain.DimCategory,
	"категорія": domain.DimCategory,
	"категория": domain.DimCategory,
	"style":     domain.DimStyle,
	"стиль":     domain.DimStyle,
	"color":     domain.DimColor,
	"colour":    domain.DimColor,
	"колір":     domain.DimColor,
	"цвет":      domain.DimColor,
	"season":    domain.DimSeason,
	"сезон":     domain.DimSeason,
}

// ParseAttributes extracts the four classification fields from raw model
// output. Each line is treated as `marker: value` (or `marker=value`); lines
// with unrecognized markers are skipped, and any value that is not a member
// of its dimension's vocabulary collapses to the unknown sentinel. The
// result never carries free text, whatever the model produced.
func ParseAttributes(raw string) domain.Attributes {
	attrs := domain.UnknownAttributes()

	for _, line := range strings.Split(raw, "\n") {
		marker, value, ok := splitField(line)
		if !ok {
			continue
		}
		dim, ok := markers[marker]
		if !ok {
			continue
		}
		if key, ok := dim.Canonical(value); ok {
			attrs.Set(dim, key)
		}
	}

	return attrs
}

// splitField splits one output line into a lowercased marker and a raw
// value. Either `:` or `=` separates them; list bullets and markdown
// emphasis around the marker are stripped.
func splitField(line string) (marker, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}

	idx := strings.IndexAny(line, ":=")
	if idx <= 0 {
		return "", "", false
	}

	marker = strings.ToLower(strings.TrimSpace(line[:idx]))
	marker = strings.Trim(marker, "-*• \t")
	value = strings.TrimSpace(line[idx+1:])
	value = strings.Trim(value, "*_`.")

	if marker == "" || value == "" {
		return "", "", false
	}
	return marker, value, true
}
