package walk

import "scratchc/syntax"

// FuncDef is a function registered in the static function registry: a named
// function declaration, or a function/arrow expression bound by a declarator.
type FuncDef struct {
	Name   string
	Params []string

	// Body is the braced statement body; Expr is the concise arrow body.
	// Exactly one of the two is meaningful.
	Body []syntax.Stmt
	Expr syntax.Expr
}

// SymbolTable holds the classification of every name in one translation
// unit.  Iteration over variables and lists follows insertion order so two
// runs over the same input materialize the sprite identically.
type SymbolTable struct {
	variables map[string]float64
	varOrder  []string

	lists     map[string][]string
	listOrder []string

	// objects maps a flattened object name to its property names in source
	// order
	objects  map[string][]string
	objOrder []string

	// Funcs is the static function registry
	Funcs map[string]*FuncDef

	// Recursive marks registry entries whose body calls themselves
	Recursive map[string]bool
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		variables: make(map[string]float64),
		lists:     make(map[string][]string),
		objects:   make(map[string][]string),
		Funcs:     make(map[string]*FuncDef),
		Recursive: make(map[string]bool),
	}
}

// DeclareVariable adds a plain variable with initial value 0.  Redeclaration
// is a no-op so an explicit initial value is never clobbered.
func (t *SymbolTable) DeclareVariable(name string) {
	if _, ok := t.variables[name]; ok {
		return
	}

	t.variables[name] = 0
	t.varOrder = append(t.varOrder, name)
}

// DeclareInitializedVariable adds a variable with a known initial value
// (used by flattened object properties)
func (t *SymbolTable) DeclareInitializedVariable(name string, value float64) {
	if _, ok := t.variables[name]; ok {
		t.variables[name] = value
		return
	}

	t.variables[name] = value
	t.varOrder = append(t.varOrder, name)
}

// RemoveVariable drops a name from the variable set (pass C cleanup)
func (t *SymbolTable) RemoveVariable(name string) {
	if _, ok := t.variables[name]; !ok {
		return
	}

	delete(t.variables, name)
	for i, n := range t.varOrder {
		if n == name {
			t.varOrder = append(t.varOrder[:i], t.varOrder[i+1:]...)
			break
		}
	}
}

// IsVariable reports whether the name is a materialized variable
func (t *SymbolTable) IsVariable(name string) bool {
	_, ok := t.variables[name]
	return ok
}

// Variables returns the variable names in insertion order
func (t *SymbolTable) Variables() []string {
	return t.varOrder
}

// VariableInit returns the initial value a variable materializes with
func (t *SymbolTable) VariableInit(name string) float64 {
	return t.variables[name]
}

// -----------------------------------------------------------------------------

// DeclareList adds a list.  A list first seen through a method call (`x.push`)
// has no initial values; a later defining array literal fills them in.
func (t *SymbolTable) DeclareList(name string, initial []string) {
	if _, ok := t.lists[name]; ok {
		if initial != nil {
			t.lists[name] = initial
		}

		return
	}

	t.lists[name] = initial
	t.listOrder = append(t.listOrder, name)
}

// IsList reports whether the name is a list
func (t *SymbolTable) IsList(name string) bool {
	_, ok := t.lists[name]
	return ok
}

// Lists returns the list names in insertion order
func (t *SymbolTable) Lists() []string {
	return t.listOrder
}

// ListInit returns the stringified initial elements of a list
func (t *SymbolTable) ListInit(name string) []string {
	return t.lists[name]
}

// -----------------------------------------------------------------------------

// DeclareObject registers a flattened object
func (t *SymbolTable) DeclareObject(name string) {
	if _, ok := t.objects[name]; ok {
		return
	}

	t.objects[name] = nil
	t.objOrder = append(t.objOrder, name)
}

// IsObject reports whether the name is a flattened object
func (t *SymbolTable) IsObject(name string) bool {
	_, ok := t.objects[name]
	return ok
}

// RegisterProperty records a property of a flattened object, preserving
// first-seen order
func (t *SymbolTable) RegisterProperty(obj, prop string) {
	for _, p := range t.objects[obj] {
		if p == prop {
			return
		}
	}

	t.objects[obj] = append(t.objects[obj], prop)
}

// Objects returns the flattened object names in insertion order
func (t *SymbolTable) Objects() []string {
	return t.objOrder
}

// Properties returns the ordered property names of a flattened object
func (t *SymbolTable) Properties(obj string) []string {
	return t.objects[obj]
}

// FlattenedName produces the variable name a flattened property compiles to
func FlattenedName(obj, prop string) string {
	return obj + "_" + prop
}

// -----------------------------------------------------------------------------

// DefineFunc registers a function definition, overwriting any previous
// binding of the same name (later definitions win, as in the source
// language)
func (t *SymbolTable) DefineFunc(def *FuncDef) {
	t.Funcs[def.Name] = def
}

// IsFunction reports whether the name is in the function registry
func (t *SymbolTable) IsFunction(name string) bool {
	_, ok := t.Funcs[name]
	return ok
}

// IsRecursive reports whether the named function calls itself
func (t *SymbolTable) IsRecursive(name string) bool {
	return t.Recursive[name]
}
