package actionlog

import "github.com/crimson-sun/actionlog/internal/engine/taxonomy"

// CategoryInfo describes one action category.
type CategoryInfo struct {
	Name        Category
	Description string
	Source      string       // event that produces it
	MenuCodes   []MenuAction // menu codes classified into it
}

// Categories returns every category the logger can emit, in a fixed order.
func Categories() []CategoryInfo {
	entries := taxonomy.Default()
	out := make([]CategoryInfo, len(entries))
	for i, e := range entries {
		out[i] = CategoryInfo{
			Name:        e.Category,
			Description: e.Desc,
			Source:      e.Source,
			MenuCodes:   e.Codes,
		}
	}
	return out
}
