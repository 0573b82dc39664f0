package interpreter

import (
	"fmt"

	"github.com/thomasrohde/lox/internal/ast"
	"github.com/thomasrohde/lox/internal/environment"
)

// Callable is implemented by every invocable Lox value: user functions,
// bound methods, classes (as constructors), and native functions.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []any) (any, error)
	String() string
}

// Function is a user-declared function or method value: the teacher's
// userFn{decl, closure} pairing (pkg/evaluator/evaluator.go), extended with
// the is_initializer flag spec.md §3/§4.5.3 requires so that calling init
// always yields the constructed instance.
type Function struct {
	Decl          *ast.FunctionStmt
	Closure       *environment.Environment
	IsInitializer bool
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme) }

// Bind returns a copy of f whose closure has an extra scope binding
// "this" -> instance, per spec.md §4.5.3's bound-method semantics.
func (f *Function) Bind(instance *Instance) *Function {
	env := f.Closure.Child()
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

func (f *Function) Call(interp *Interpreter, args []any) (any, error) {
	env := f.Closure.Child()
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.executeBlock(f.Decl.Body, env)
	if ret, ok := asReturn(err); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// Class is a Lox class object: a name, optional superclass, and method
// table, per spec.md §3.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return c.Name }

// FindMethod looks up name in c's own method table, then its superclass
// chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(interp *Interpreter, args []any) (any, error) {
	instance := &Instance{Class: c, Fields: make(map[string]any)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a reference to its class and a mutable
// field table, per spec.md §3.
type Instance struct {
	Class  *Class
	Fields map[string]any
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

// Get resolves a property: fields shadow methods.
func (i *Instance) Get(name string) (any, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set assigns a field, creating it if absent.
func (i *Instance) Set(name string, value any) {
	i.Fields[name] = value
}

// NativeFunction wraps a builtin such as clock().
type NativeFunction struct {
	Name     string
	arity    int
	Function func(interp *Interpreter, args []any) (any, error)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) String() string { return "<native fn>" }

func (n *NativeFunction) Call(interp *Interpreter, args []any) (any, error) {
	return n.Function(interp, args)
}
