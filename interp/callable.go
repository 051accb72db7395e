package interp

import (
	"fmt"

	"github.com/fen-lang/fen/compiler"
)

// ---------------------------------------------------------------------------
// Callable: the three invocable value shapes
// ---------------------------------------------------------------------------

// Callable is implemented by native builtins, user functions, and bound
// methods. Call receives the context chain active at the call site; user
// functions resolve free variables through it rather than through a
// captured environment snapshot.
type Callable interface {
	Name() string
	Arity() int
	Describe() string
	Call(in *Interp, ctx *Context, args []Value) (Value, error)
}

// Builtin is a native built-in function, created once at startup.
type Builtin struct {
	name  string
	arity int
	fn    func(in *Interp, args []Value) (Value, error)
}

func (b *Builtin) Name() string { return b.name }
func (b *Builtin) Arity() int   { return b.arity }
func (b *Builtin) Describe() string {
	return fmt.Sprintf("<builtin %s/%d>", b.name, b.arity)
}

func (b *Builtin) Call(in *Interp, _ *Context, args []Value) (Value, error) {
	return b.fn(in, args)
}

// Function is a user-defined function. It owns its AST definition and no
// environment: the call frame's parent is whatever context chain is
// active when the call executes.
type Function struct {
	decl *compiler.FunLiteral
}

// NewFunction wraps a function literal's definition.
func NewFunction(decl *compiler.FunLiteral) *Function {
	return &Function{decl: decl}
}

func (f *Function) Name() string {
	if f.decl.Name == "" {
		return "(anonymous)"
	}
	return f.decl.Name
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Describe() string {
	return fmt.Sprintf("<fun %s/%d>", f.Name(), f.Arity())
}

func (f *Function) Call(in *Interp, ctx *Context, args []Value) (Value, error) {
	frame := NewFunctionContext(ctx, f)
	if f.decl.Name != "" {
		// Named functions can recurse through their own name even when the
		// defining binding is not reachable from the call site.
		frame.Define(f.decl.Name, FunctionValue(f))
	}
	for i, param := range f.decl.Params {
		frame.Define(param, args[i])
	}

	value, sig, err := in.execStatements(f.decl.Body.Statements, frame)
	if err != nil {
		return Nil, err
	}
	switch sig.kind {
	case sigReturn:
		return value, nil
	case sigBreak:
		// A break escaping its loop is caught at the function boundary.
		return Nil, runtimeErrorf(sig.pos, "break outside of loop")
	}
	return value, nil
}

// BoundMethod is a callable curried with a receiver, produced by member
// access on a dict whose entry holds a function. Invocation prepends the
// receiver as an implicit first argument.
type BoundMethod struct {
	receiver Value
	fn       Callable
}

// NewBoundMethod binds fn to receiver.
func NewBoundMethod(receiver Value, fn Callable) *BoundMethod {
	return &BoundMethod{receiver: receiver, fn: fn}
}

func (m *BoundMethod) Name() string { return m.fn.Name() }

func (m *BoundMethod) Arity() int { return m.fn.Arity() - 1 }

func (m *BoundMethod) Describe() string {
	return fmt.Sprintf("<bound %s/%d>", m.Name(), m.Arity())
}

func (m *BoundMethod) Call(in *Interp, ctx *Context, args []Value) (Value, error) {
	full := make([]Value, 0, len(args)+1)
	full = append(full, m.receiver)
	full = append(full, args...)
	return m.fn.Call(in, ctx, full)
}
