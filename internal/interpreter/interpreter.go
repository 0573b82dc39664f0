// Package interpreter implements Lox's tree-walking evaluator (spec.md
// §4.5): statement and expression semantics, call frames, closures,
// classes, and runtime error reporting.
//
// Grounded on the teacher's pkg/evaluator/evaluator.go: an evaluator struct
// threading a current *Env, a userFn{decl, closure} pairing (here:
// *Function), and an A0RuntimeError{Code, Message, Span} shape (here:
// errs.RuntimeError{Token, Message}). Return is implemented as a typed
// error propagated up through ordinary Go error returns and matched with
// errors.As at the call frame that owns it — the same non-local-unwind-as-
// typed-error idiom the teacher's parser already uses for panic mode,
// rather than panic/recover.
package interpreter

import (
	"errors"
	"fmt"
	"time"

	"github.com/thomasrohde/lox/internal/ast"
	"github.com/thomasrohde/lox/internal/environment"
	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/resolver"
	"github.com/thomasrohde/lox/internal/telemetry"
	"github.com/thomasrohde/lox/internal/token"
)

var tracer = telemetry.Select("lox.interpreter")

// returnSignal is the non-local control-flow signal raised by a return
// statement; it is matched only by the enclosing call frame (spec.md §5)
// and is never reported as an error.
type returnSignal struct {
	Value any
}

func (returnSignal) Error() string { return "return" }

func asReturn(err error) (returnSignal, bool) {
	var r returnSignal
	if errors.As(err, &r) {
		return r, true
	}
	return returnSignal{}, false
}

// Printer is where Print statements and REPL auto-print write their
// output; *os.File (e.g. os.Stdout) satisfies it.
type Printer interface {
	Write(p []byte) (int, error)
}

// Interpreter holds the global scope, the current scope, the resolver's
// locals table, and REPL-mode behavior (spec.md §4.5).
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	locals  resolver.Locals
	report  *errs.Reporter
	stdout  Printer
	repl    bool
}

// New creates an Interpreter with globals pre-populated with clock(). print
// statements and REPL auto-print write to stdout. A runtime error is
// recorded on report (not printed here) — the driver renders it via
// internal/clireport after Run returns, so coloring stays a CLI concern.
func New(report *errs.Reporter, stdout Printer, replMode bool) *Interpreter {
	globals := environment.New()
	interp := &Interpreter{Globals: globals, env: globals, report: report, stdout: stdout, repl: replMode}
	registerNatives(globals)
	return interp
}

// SetLocals installs the resolver's hop-distance table ahead of Run.
func (i *Interpreter) SetLocals(locals resolver.Locals) {
	i.locals = locals
}

// Run executes stmts, catching at most one runtime error (spec.md §5/§7):
// evaluation of the failing statement is abandoned and the error is
// reported once.
func (i *Interpreter) Run(stmts []ast.Stmt) {
	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			var rte *errs.RuntimeError
			if errors.As(err, &rte) {
				i.report.ReportRuntime(rte)
			}
			return
		}
	}
}

// --- statement execution ---

func (i *Interpreter) execute(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		value, err := i.evaluate(st.Expression)
		if err != nil {
			return err
		}
		if i.repl {
			switch st.Expression.(type) {
			case *ast.Assign, *ast.Set, *ast.Call:
				// no auto-print
			default:
				fmt.Fprintln(i.stdout, Stringify(value))
			}
		}
		return nil
	case *ast.PrintStmt:
		value, err := i.evaluate(st.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, Stringify(value))
		return nil
	case *ast.VarStmt:
		var value any
		if st.Initializer != nil {
			v, err := i.evaluate(st.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(st.Name.Lexeme, value)
		return nil
	case *ast.BlockStmt:
		return i.executeBlock(st.Statements, i.env.Child())
	case *ast.IfStmt:
		cond, err := i.evaluate(st.Condition)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return i.execute(st.ThenBranch)
		} else if st.ElseBranch != nil {
			return i.execute(st.ElseBranch)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(st.Condition)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			if err := i.execute(st.Body); err != nil {
				return err
			}
		}
	case *ast.FunctionStmt:
		fn := &Function{Decl: st, Closure: i.env}
		i.env.Define(st.Name.Lexeme, fn)
		return nil
	case *ast.ReturnStmt:
		var value any
		if st.Value != nil {
			v, err := i.evaluate(st.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{Value: value}
	case *ast.ClassStmt:
		return i.executeClass(st)
	default:
		return nil
	}
}

func (i *Interpreter) executeClass(st *ast.ClassStmt) error {
	var superclass *Class
	if st.Superclass != nil {
		v, err := i.evaluate(st.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &errs.RuntimeError{Token: st.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	i.env.Define(st.Name.Lexeme, nil)

	previousEnv := i.env
	if st.Superclass != nil {
		i.env = i.env.Child()
		i.env.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, m := range st.Methods {
		methods[m.Name.Lexeme] = &Function{Decl: m, Closure: i.env, IsInitializer: m.Name.Lexeme == "init"}
	}

	class := &Class{Name: st.Name.Lexeme, Superclass: superclass, Methods: methods}

	if st.Superclass != nil {
		i.env = previousEnv
	}

	return i.env.Assign(st.Name.Lexeme, class)
}

// executeBlock runs stmts in env, restoring the previous current
// environment on every exit path, including an error/return unwind
// (spec.md §4.5.1).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --- expression evaluation ---

func (i *Interpreter) evaluate(e ast.Expr) (any, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return ex.Value, nil
	case *ast.Grouping:
		return i.evaluate(ex.Expression)
	case *ast.Unary:
		return i.evalUnary(ex)
	case *ast.Binary:
		return i.evalBinary(ex)
	case *ast.Logical:
		return i.evalLogical(ex)
	case *ast.Variable:
		return i.lookUpVariable(ex.Name, ex)
	case *ast.This:
		return i.lookUpVariable(ex.Keyword, ex)
	case *ast.Assign:
		return i.evalAssign(ex)
	case *ast.Call:
		return i.evalCall(ex)
	case *ast.Get:
		return i.evalGet(ex)
	case *ast.Set:
		return i.evalSet(ex)
	case *ast.Super:
		return i.evalSuper(ex)
	default:
		return nil, nil
	}
}

func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	v, err := i.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, &errs.RuntimeError{Token: name, Message: err.Error()}
	}
	return v, nil
}

func (i *Interpreter) evalAssign(ex *ast.Assign) (any, error) {
	value, err := i.evaluate(ex.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[ex]; ok {
		i.env.AssignAt(distance, ex.Name.Lexeme, value)
	} else if err := i.Globals.Assign(ex.Name.Lexeme, value); err != nil {
		return nil, &errs.RuntimeError{Token: ex.Name, Message: err.Error()}
	}
	return value, nil
}

func (i *Interpreter) evalLogical(ex *ast.Logical) (any, error) {
	left, err := i.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	if ex.Operator.Kind == token.Or {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}
	return i.evaluate(ex.Right)
}

func (i *Interpreter) evalUnary(ex *ast.Unary) (any, error) {
	right, err := i.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}
	switch ex.Operator.Kind {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, &errs.RuntimeError{Token: ex.Operator, Message: "Operand must be a number."}
		}
		return -n, nil
	case token.Bang:
		return !truthy(right), nil
	}
	return nil, nil
}

func (i *Interpreter) evalBinary(ex *ast.Binary) (any, error) {
	left, err := i.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Operator.Kind {
	case token.Minus:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a - b })
	case token.Slash:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a / b })
	case token.Star:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a * b })
	case token.Plus:
		return evalPlus(ex.Operator, left, right)
	case token.Greater:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a > b })
	case token.GreaterEqual:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a >= b })
	case token.Less:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a < b })
	case token.LessEqual:
		return numberOp(ex.Operator, left, right, func(a, b float64) any { return a <= b })
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	}
	return nil, nil
}

func numberOp(op token.Token, left, right any, f func(a, b float64) any) (any, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, &errs.RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	return f(l, r), nil
}

func evalPlus(op token.Token, left, right any) (any, error) {
	if l, ok := left.(float64); ok {
		if r, ok := right.(float64); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(string); ok {
		switch right.(type) {
		case string, float64, bool:
			return l + Stringify(right), nil
		}
	}
	return nil, &errs.RuntimeError{Token: op, Message: "Operands must be either two numbers or a string and a literal value."}
}

func (i *Interpreter) evalCall(ex *ast.Call) (any, error) {
	callee, err := i.evaluate(ex.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(ex.Args))
	for _, a := range ex.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &errs.RuntimeError{Token: ex.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &errs.RuntimeError{
			Token:   ex.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}
	tracer.Debugf("calling %s with %d args", callable.String(), len(args))
	return callable.Call(i, args)
}

func (i *Interpreter) evalGet(ex *ast.Get) (any, error) {
	object, err := i.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, &errs.RuntimeError{Token: ex.Name, Message: "Only instances have properties."}
	}
	v, ok := instance.Get(ex.Name.Lexeme)
	if !ok {
		return nil, &errs.RuntimeError{Token: ex.Name, Message: fmt.Sprintf("Undefined property '%s'.", ex.Name.Lexeme)}
	}
	return v, nil
}

func (i *Interpreter) evalSet(ex *ast.Set) (any, error) {
	object, err := i.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, &errs.RuntimeError{Token: ex.Name, Message: "Only instances have fields."}
	}
	value, err := i.evaluate(ex.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(ex.Name.Lexeme, value)
	return value, nil
}

func (i *Interpreter) evalSuper(ex *ast.Super) (any, error) {
	distance := i.locals[ex]
	superclass, _ := i.env.GetAt(distance, "super").(*Class)
	instance, _ := i.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(ex.Method.Lexeme)
	if !ok {
		return nil, &errs.RuntimeError{Token: ex.Method, Message: fmt.Sprintf("Undefined property '%s'.", ex.Method.Lexeme)}
	}
	return method.Bind(instance), nil
}

// --- value helpers (spec.md §4.6) ---

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func registerNatives(globals *environment.Environment) {
	globals.Define("clock", &NativeFunction{
		Name:  "clock",
		arity: 0,
		Function: func(interp *Interpreter, args []any) (any, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
}
