package cas

import (
	"encoding/json"
	"sort"
)

// ============================================================
// Traversal
// ============================================================

func mapArgs(e Expr, f func(Expr) Expr) Expr {
	args := e.Args()
	if len(args) == 0 {
		return e
	}
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = f(a)
	}
	return e.withArgs(out)
}

// replaceAll rewrites e top-down. When f reports a match the replacement is
// used as is and its children are not visited.
func replaceAll(e Expr, f func(Expr) (Expr, bool)) Expr {
	if r, ok := f(e); ok {
		return r
	}
	return mapArgs(e, func(a Expr) Expr { return replaceAll(a, f) })
}

// Xreplace substitutes whole subtrees. Keys are the String() form of the
// subtree to replace.
func Xreplace(e Expr, subs map[string]Expr) Expr {
	if len(subs) == 0 {
		return e
	}
	return replaceAll(e, func(x Expr) (Expr, bool) {
		r, ok := subs[x.String()]
		return r, ok
	})
}

// Subs replaces every occurrence of the symbol name with value.
func Subs(e Expr, name string, value Expr) Expr {
	return Xreplace(e, map[string]Expr{name: value})
}

// Has reports whether e applies any of the named functions.
func Has(e Expr, funcs ...string) bool {
	if f, ok := e.(*Func); ok {
		for _, name := range funcs {
			if f.name == name {
				return true
			}
		}
	}
	for _, a := range e.Args() {
		if Has(a, funcs...) {
			return true
		}
	}
	return false
}

// FreeSymbols returns the sorted names of the symbols in e, excluding the
// named constants.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	collectSymbols(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, seen map[string]struct{}) {
	if s, ok := e.(*Sym); ok {
		if s.name != Pi.name && s.name != EulerE.name {
			seen[s.name] = struct{}{}
		}
		return
	}
	for _, a := range e.Args() {
		collectSymbols(a, seen)
	}
}

// ============================================================
// JSON
// ============================================================

// ToJSON renders the expression tree as indented JSON.
func ToJSON(e Expr) (string, error) {
	b, err := json.MarshalIndent(e.toJSON(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
