// Package enumvalidator reports string literals written into enum-typed
// struct fields. An enum here is a named string type with at least one
// constant declared in its own package, such as model.EntityType or
// queue.Trigger. Literals bypass the declared set and drift silently when a
// value is renamed.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "enumvalidator",
	Doc:      "reports string literals assigned to enum-typed struct fields",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.KeyValueExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.AssignStmt:
			if len(n.Lhs) != len(n.Rhs) {
				return
			}
			for i, lhs := range n.Lhs {
				sel, ok := lhs.(*ast.SelectorExpr)
				if !ok || !isStringLit(n.Rhs[i]) {
					continue
				}
				selection, ok := pass.TypesInfo.Selections[sel]
				if !ok || selection.Kind() != types.FieldVal {
					continue
				}
				if isEnum(selection.Type()) {
					pass.Reportf(n.Rhs[i].Pos(), "enum field %s assigned string literal", sel.Sel.Name)
				}
			}

		case *ast.KeyValueExpr:
			key, ok := n.Key.(*ast.Ident)
			if !ok || !isStringLit(n.Value) {
				return
			}
			field, ok := pass.TypesInfo.Uses[key].(*types.Var)
			if !ok || !field.IsField() {
				return
			}
			if isEnum(field.Type()) {
				pass.Reportf(n.Value.Pos(), "enum field %s assigned string literal", key.Name)
			}
		}
	})

	return nil, nil
}

func isStringLit(expr ast.Expr) bool {
	lit, ok := ast.Unparen(expr).(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}

func isEnum(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.String {
		return false
	}

	obj := named.Obj()
	if obj.Pkg() == nil {
		return false
	}
	scope := obj.Pkg().Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), named) {
			return true
		}
	}
	return false
}
