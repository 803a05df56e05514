package catalog

import (
	"strings"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// CategoryAll is the sentinel selection meaning "no category filter".
const CategoryAll = "all"

// Filter computes the visible subset of sweets for the given search text
// and category selection. It is a pure function: the view is always
// recomputed from the full collection, never maintained incrementally.
//
// Search runs first and keeps sweets whose name or category contains the
// text case-insensitively; the category filter then keeps exact matches
// unless the selection is CategoryAll. The two filters are conjunctive.
func Filter(sweets []models.Sweet, query, category string) []models.Sweet {
	result := make([]models.Sweet, 0, len(sweets))

	query = strings.ToLower(strings.TrimSpace(query))
	for _, s := range sweets {
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Category), query) {
			continue
		}
		if category != CategoryAll && s.Category != category {
			continue
		}
		result = append(result, s)
	}
	return result
}

// Categories returns the selection options: CategoryAll followed by the
// distinct categories of the collection in first-seen order.
func Categories(sweets []models.Sweet) []string {
	options := []string{CategoryAll}
	seen := make(map[string]struct{}, len(sweets))

	for _, s := range sweets {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		options = append(options, s.Category)
	}
	return options
}
