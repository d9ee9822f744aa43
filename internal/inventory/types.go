package inventory

// DeclarationKind enumerates the declaration categories the extractor recovers.
type DeclarationKind string

// Declaration categories recovered from source text.
const (
	DeclarationKindClass    DeclarationKind = "class"
	DeclarationKindFunction DeclarationKind = "function"
	DeclarationKindConstant DeclarationKind = "constant"
)

// Declaration is a recovered top-level identifier. Order within the returned
// sequence equals source order; no signature or type information is kept.
type Declaration struct {
	Name string
	Kind DeclarationKind
}

// Names flattens declarations into their identifier names, preserving order.
func Names(declarations []Declaration) []string {
	names := make([]string, 0, len(declarations))
	for _, declaration := range declarations {
		names = append(names, declaration.Name)
	}
	return names
}
