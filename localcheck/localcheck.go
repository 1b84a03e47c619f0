// Package localcheck provides a go/analysis based analyzer that reports
// task-local reads inside spawned goroutines. A value installed with
// SyncScope or Scope is visible only to the establishing execution context;
// a goroutine started inside a scope body does not inherit it, so reads of a
// captured key from the new goroutine observe nothing (or panic).
package localcheck

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const localPkgPath = "github.com/NetPo4ki/go-tasklocal/local"

// Analyzer is the main analyzer for localcheck.
var Analyzer = &analysis.Analyzer{
	Name:     "localcheck",
	Doc:      "checks that task-local keys are not read from goroutines that never entered a scope",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.GoStmt)(nil)}, func(n ast.Node) {
		goStmt := n.(*ast.GoStmt)
		if lit, ok := goStmt.Call.Fun.(*ast.FuncLit); ok {
			checkFuncLit(pass, lit)
		}
	})
	return nil, nil
}

// checkFuncLit reports reads of captured keys inside lit unless the literal
// establishes its own scope on the same key.
func checkFuncLit(pass *analysis.Pass, lit *ast.FuncLit) {
	type keyRead struct {
		sel *ast.SelectorExpr
		obj types.Object
	}
	var reads []keyRead
	rescoped := make(map[types.Object]bool)

	ast.Inspect(lit.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		x, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		obj := pass.TypesInfo.Uses[x]
		if obj == nil || !isKeyType(obj.Type()) || declaredWithin(obj, lit) {
			return true
		}
		switch sel.Sel.Name {
		case "SyncScope":
			rescoped[obj] = true
		case "Get", "TryGet", "With", "TryWith":
			reads = append(reads, keyRead{sel: sel, obj: obj})
		}
		return true
	})

	for _, r := range reads {
		if rescoped[r.obj] {
			continue
		}
		pass.Reportf(r.sel.Pos(),
			"task-local key %s does not propagate into spawned goroutines; enter a new scope inside the goroutine",
			r.obj.Name())
	}
}

// isKeyType reports whether t is local.Key or local.SharedKey, possibly
// behind a pointer.
func isKeyType(t types.Type) bool {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != localPkgPath {
		return false
	}
	return obj.Name() == "Key" || obj.Name() == "SharedKey"
}

// declaredWithin reports whether obj is declared inside lit, in which case
// it is not a capture from the spawning scope.
func declaredWithin(obj types.Object, lit *ast.FuncLit) bool {
	return obj.Pos() >= lit.Pos() && obj.Pos() <= lit.End()
}
