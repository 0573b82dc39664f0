// Package resolver implements Lox's static resolution pass (spec.md §4.3):
// one AST walk that annotates each variable/this/super use with its lexical
// hop-distance and catches the eight static-name diagnostics.
//
// The single-pass, scope-stack-with-ambient-state shape is grounded on the
// teacher's pkg/validator package (a scope{bindings, parent} chain walked
// alongside the AST to validate A0 bindings/capabilities); repurposed here
// from capability validation to lexical hop-distance resolution. The scope
// stack itself is backed by emirpasic/gods' stacks/arraystack, grounded on
// npillmayer-gorgo's go.mod dependency on the same package for analogous
// compiler-pass stack state.
package resolver

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/thomasrohde/lox/internal/ast"
	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/telemetry"
	"github.com/thomasrohde/lox/internal/token"
)

var tracer = telemetry.Select("lox.resolver")

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// bindingState distinguishes a declared-but-not-yet-defined name (to catch
// "var a = a;") from one ready to use.
type bindingState struct {
	declared bool
	defined  bool
}

type scope struct {
	names map[string]*bindingState
}

func newScope() *scope {
	return &scope{names: make(map[string]*bindingState)}
}

// Locals is produced by Resolve and consumed by the interpreter: node
// identity -> hop-distance.
type Locals map[ast.Expr]int

// Resolver performs the static resolution pass.
type Resolver struct {
	scopes          *arraystack.Stack
	locals          Locals
	report          *errs.Reporter
	currentFunction functionType
	currentClass    classType
}

// New returns a Resolver ready to resolve a program.
func New(report *errs.Reporter) *Resolver {
	return &Resolver{
		scopes: arraystack.New(),
		locals: make(Locals),
		report: report,
	}
}

// Resolve walks stmts, returning the hop-distance table. If report.HadError()
// becomes true, the caller must not proceed to interpretation (spec.md §4.3).
func Resolve(stmts []ast.Stmt, report *errs.Reporter) Locals {
	r := New(report)
	r.resolveStmts(stmts)
	tracer.Debugf("resolved %d locals", len(r.locals))
	return r.locals
}

// --- scope stack helpers ---

func (r *Resolver) beginScope() {
	r.scopes.Push(newScope())
}

func (r *Resolver) endScope() {
	r.scopes.Pop()
}

func (r *Resolver) peekScope() (*scope, bool) {
	v, ok := r.scopes.Peek()
	if !ok {
		return nil, false
	}
	return v.(*scope), true
}

func (r *Resolver) declare(name token.Token) {
	sc, ok := r.peekScope()
	if !ok {
		return // global scope: not tracked on the stack
	}
	if _, exists := sc.names[name.Lexeme]; exists {
		r.report.ReportToken(errs.Resolve, name, "Variable with this name already declared in this scope.")
	}
	sc.names[name.Lexeme] = &bindingState{declared: true, defined: false}
}

func (r *Resolver) define(name token.Token) {
	sc, ok := r.peekScope()
	if !ok {
		return
	}
	if b, exists := sc.names[name.Lexeme]; exists {
		b.defined = true
	} else {
		sc.names[name.Lexeme] = &bindingState{declared: true, defined: true}
	}
}

// resolveLocal walks the scope stack from innermost (top) outward; the
// stack's top-first Values() ordering makes the walk index equal to the
// hop-distance directly.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i, raw := range r.scopes.Values() {
		sc := raw.(*scope)
		if _, ok := sc.names[name]; ok {
			r.locals[expr] = i
			return
		}
	}
	// Not found in any scope: treated as a global reference at evaluation time.
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.currentFunction = enclosingFunction
}

// --- statements ---

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(st.Statements)
		r.endScope()
	case *ast.VarStmt:
		r.declare(st.Name)
		if st.Initializer != nil {
			r.resolveExpr(st.Initializer)
		}
		r.define(st.Name)
	case *ast.FunctionStmt:
		r.declare(st.Name)
		r.define(st.Name)
		r.resolveFunction(st, fnFunction)
	case *ast.ClassStmt:
		r.resolveClass(st)
	case *ast.ExpressionStmt:
		r.resolveExpr(st.Expression)
	case *ast.IfStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.ThenBranch)
		if st.ElseBranch != nil {
			r.resolveStmt(st.ElseBranch)
		}
	case *ast.PrintStmt:
		r.resolveExpr(st.Expression)
	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.report.ReportToken(errs.Resolve, st.Keyword, "Cannot return from top-level code.")
		}
		if st.Value != nil {
			if r.currentFunction == fnInitializer {
				r.report.ReportToken(errs.Resolve, st.Keyword, "Cannot return a value from an initializer.")
			}
			r.resolveExpr(st.Value)
		}
	case *ast.WhileStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Body)
	}
}

func (r *Resolver) resolveClass(st *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	r.declare(st.Name)
	r.define(st.Name)

	if st.Superclass != nil {
		if st.Superclass.Name.Lexeme == st.Name.Lexeme {
			r.report.ReportToken(errs.Resolve, st.Superclass.Name, "A class cannot inherit from itself.")
		}
		r.resolveExpr(st.Superclass)
		r.currentClass = classSubclass
		r.beginScope()
		if sc, ok := r.peekScope(); ok {
			sc.names["super"] = &bindingState{declared: true, defined: true}
		}
	}

	r.beginScope()
	if sc, ok := r.peekScope(); ok {
		sc.names["this"] = &bindingState{declared: true, defined: true}
	}

	for _, method := range st.Methods {
		declType := fnMethod
		if method.Name.Lexeme == "init" {
			declType = fnInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()

	if st.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

// --- expressions ---

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.Variable:
		if sc, ok := r.peekScope(); ok {
			if b, exists := sc.names[ex.Name.Lexeme]; exists && b.declared && !b.defined {
				r.report.ReportToken(errs.Resolve, ex.Name, "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(ex, ex.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex, ex.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Logical:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Unary:
		r.resolveExpr(ex.Right)
	case *ast.Grouping:
		r.resolveExpr(ex.Expression)
	case *ast.Call:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(ex.Object)
	case *ast.Set:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.report.ReportToken(errs.Resolve, ex.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(ex, "this")
	case *ast.Super:
		if r.currentClass == classNone {
			r.report.ReportToken(errs.Resolve, ex.Keyword, "Cannot use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.report.ReportToken(errs.Resolve, ex.Keyword, "Cannot use 'super' in a class with no superclass.")
		}
		r.resolveLocal(ex, "super")
	case *ast.Literal:
		// nothing to resolve
	}
}
