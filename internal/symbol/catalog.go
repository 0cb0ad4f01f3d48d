package symbol

import "github.com/housing-studio/hsl-index/internal/scan"

// Catalog holds the read-only standard-library tables: the built-in action
// and condition callables plus top-level constants, parsed from the
// well-known catalog files shipped with the language. User code cannot
// redefine these, so queries consult them ahead of workspace symbols of the
// same kinds. The catalog is rebuilt wholesale whenever a source file
// changes; the tables are small and rebuilds happen at file-save
// granularity.
type Catalog struct {
	Actions    map[string]*Declaration
	Conditions map[string]*Declaration
	Constants  map[string]*Declaration
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Actions:    make(map[string]*Declaration),
		Conditions: make(map[string]*Declaration),
		Constants:  make(map[string]*Declaration),
	}
}

// LoadActions replaces the action table from the actions catalog file text.
func (c *Catalog) LoadActions(path, text string) {
	c.Actions, c.Constants = parseCatalogFile(path, text, c.Constants)
}

// LoadConditions replaces the condition table from the conditions catalog
// file text.
func (c *Catalog) LoadConditions(path, text string) {
	c.Conditions, c.Constants = parseCatalogFile(path, text, c.Constants)
}

// Callable looks up a built-in by name, actions first.
func (c *Catalog) Callable(name string) *Declaration {
	if d, ok := c.Actions[name]; ok {
		return d
	}
	if d, ok := c.Conditions[name]; ok {
		return d
	}
	return nil
}

func parseCatalogFile(path, text string, constants map[string]*Declaration) (map[string]*Declaration, map[string]*Declaration) {
	fns := make(map[string]*Declaration)
	if constants == nil {
		constants = make(map[string]*Declaration)
	} else {
		// Drop constants previously contributed by this path before merging.
		for name, d := range constants {
			if d.File == path {
				delete(constants, name)
			}
		}
	}
	lines := scan.Lines(text)
	for _, d := range ParseDeclarations(path, lines, KindFunction, KindConstant) {
		switch d.Kind {
		case KindFunction:
			fns[d.Name] = d
		case KindConstant:
			constants[d.Name] = d
		}
	}
	return fns, constants
}
