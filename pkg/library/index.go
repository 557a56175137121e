// Package library loads the externally supplied component catalog and builds
// an immutable multi-keyed index over it for the pipeline converters.
package library

import (
	"sort"

	"github.com/nirs4all/studio/pkg/models"
)

// Entry is one indexed catalog component with its resolved placement.
// Category and Subcategory are nil when the catalog's weak links dangle;
// a missing link is tolerated, never a fault.
type Entry struct {
	Component   *models.ComponentDefinition
	Category    *models.CategoryDefinition
	Subcategory *models.SubcategoryDefinition
}

// Index is an immutable multi-keyed view of a component catalog: one entry
// store addressed by component id, class path, and function path. When
// several components share a class-path or function-path key, the first one
// seen wins; that rule is enforced once, at insert.
//
// The index never mutates after construction, so a single instance can back
// any number of concurrent conversions.
type Index struct {
	entries        []Entry
	byID           map[string]int
	byClassPath    map[string]int
	byFunctionPath map[string]int
	aliases        map[string]string
}

// Option configures index construction.
type Option func(*indexOptions)

type indexOptions struct {
	aliases map[string]string
}

// WithAliases substitutes the legacy alias table (short class name to catalog
// component id). The default is DefaultAliases.
func WithAliases(aliases map[string]string) Option {
	return func(o *indexOptions) {
		o.aliases = aliases
	}
}

// NewIndex builds the index from a catalog document. A nil catalog yields an
// index whose lookups all answer "not found"; construction never fails.
func NewIndex(catalog *models.ComponentLibrary, opts ...Option) *Index {
	options := indexOptions{aliases: DefaultAliases}
	for _, opt := range opts {
		opt(&options)
	}

	idx := &Index{
		byID:           make(map[string]int),
		byClassPath:    make(map[string]int),
		byFunctionPath: make(map[string]int),
		aliases:        options.aliases,
	}

	if catalog == nil {
		return idx
	}

	categories := make(map[string]*models.CategoryDefinition, len(catalog.Categories))
	for i := range catalog.Categories {
		category := &catalog.Categories[i]
		if _, ok := categories[category.ID]; !ok {
			categories[category.ID] = category
		}
	}

	subcategories := make(map[string]*models.SubcategoryDefinition, len(catalog.Subcategories))
	for i := range catalog.Subcategories {
		subcategory := &catalog.Subcategories[i]
		if _, ok := subcategories[subcategory.ID]; !ok {
			subcategories[subcategory.ID] = subcategory
		}
	}

	for i := range catalog.Components {
		component := &catalog.Components[i]

		entry := Entry{Component: component}
		if subcategory, ok := subcategories[component.SubcategoryID]; ok {
			entry.Subcategory = subcategory
			if category, ok := categories[subcategory.CategoryID]; ok {
				entry.Category = category
			}
		}

		idx.insert(entry)
	}

	return idx
}

// insert stores the entry and registers every key it answers to, skipping
// keys already claimed by an earlier component (first-seen-wins).
func (idx *Index) insert(entry Entry) {
	pos := len(idx.entries)
	idx.entries = append(idx.entries, entry)

	component := entry.Component
	if _, taken := idx.byID[component.ID]; !taken {
		idx.byID[component.ID] = pos
	}

	if component.ClassPath != "" {
		if _, taken := idx.byClassPath[component.ClassPath]; !taken {
			idx.byClassPath[component.ClassPath] = pos
		}
	}

	if component.FunctionPath != "" {
		if _, taken := idx.byFunctionPath[component.FunctionPath]; !taken {
			idx.byFunctionPath[component.FunctionPath] = pos
		}
	}
}

// ByID looks a component up by its catalog id.
func (idx *Index) ByID(id string) (Entry, bool) {
	return idx.lookup(idx.byID, id)
}

// ByClassPath looks a component up by its fully qualified class path.
func (idx *Index) ByClassPath(path string) (Entry, bool) {
	return idx.lookup(idx.byClassPath, path)
}

// ByFunctionPath looks a component up by its fully qualified function path.
func (idx *Index) ByFunctionPath(path string) (Entry, bool) {
	return idx.lookup(idx.byFunctionPath, path)
}

func (idx *Index) lookup(view map[string]int, key string) (Entry, bool) {
	pos, ok := view[key]
	if !ok {
		return Entry{}, false
	}

	return idx.entries[pos], true
}

// AliasTarget resolves a legacy short class name to its catalog component id.
func (idx *Index) AliasTarget(shortName string) (string, bool) {
	id, ok := idx.aliases[shortName]

	return id, ok
}

// AliasClass performs the reverse alias lookup: the short class name
// registered for a component id. When several aliases point at the same id
// the lexicographically smallest wins, so the answer is deterministic.
func (idx *Index) AliasClass(componentID string) (string, bool) {
	shortNames := make([]string, 0, len(idx.aliases))
	for shortName, id := range idx.aliases {
		if id == componentID {
			shortNames = append(shortNames, shortName)
		}
	}

	if len(shortNames) == 0 {
		return "", false
	}

	sort.Strings(shortNames)

	return shortNames[0], true
}

// Len reports how many components the index carries.
func (idx *Index) Len() int {
	return len(idx.entries)
}
