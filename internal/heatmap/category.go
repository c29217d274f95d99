package heatmap

import "strings"

// Category is one semantic class of annotated region, e.g. "Title" or
// "Image". The set of valid categories is closed per pipeline run.
type Category string

// Tag returns the serialization tag for the category: lower-cased, with
// '/' and spaces replaced by '_', and a "_heat" suffix. Tags must be
// single whitespace-free tokens because rows are space-separated.
func (c Category) Tag() string {
	s := strings.ToLower(string(c))
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s + "_heat"
}

// CategorySet is an ordered, closed set of categories. The order is the
// order categories are emitted in serialized rows; matching is
// case-insensitive on the full category name.
type CategorySet struct {
	ordered []Category
	byName  map[string]Category
}

// NewCategorySet builds a set from category names in emission order.
func NewCategorySet(names ...string) CategorySet {
	s := CategorySet{
		ordered: make([]Category, 0, len(names)),
		byName:  make(map[string]Category, len(names)),
	}
	for _, n := range names {
		c := Category(n)
		s.ordered = append(s.ordered, c)
		s.byName[strings.ToLower(n)] = c
	}
	return s
}

// Canonical maps a raw label onto its category. The second return value
// is false when the label is not in the set; callers skip such labels
// rather than failing the document.
func (s CategorySet) Canonical(raw string) (Category, bool) {
	c, ok := s.byName[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// Categories returns the categories in emission order.
func (s CategorySet) Categories() []Category {
	out := make([]Category, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int { return len(s.ordered) }

// LayoutCategories is the text-layout category set used for poster
// layout datasets.
var LayoutCategories = NewCategorySet(
	"Title",
	"Location",
	"Time",
	"Host/organization",
	"Call-To-Action/Purpose",
	"Text descriptions/details",
)

// ImageDecoCategories is the category set for image and decoration
// region datasets.
var ImageDecoCategories = NewCategorySet(
	"Image",
	"Decoration",
)
