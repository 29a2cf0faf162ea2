package parser

import "strings"

// Category is one of the closed set of spending categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
)

// Categories lists the permitted categories in prompt order.
var Categories = []Category{CategoryFood, CategoryEntertainment, CategoryUtilities}

// CanonicalCategory maps a model-supplied category onto the closed set,
// ignoring case and surrounding whitespace.
func CanonicalCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, true
		}
	}
	return "", false
}

func categoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}
