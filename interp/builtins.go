package interp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

var startTime = time.Now()

// registerBuiltins installs the native functions into the root context.
// User code can shadow any of them with an ordinary let binding.
func registerBuiltins(ctx *Context) {
	define := func(name string, arity int, fn func(in *Interp, args []Value) (Value, error)) {
		ctx.Define(name, FunctionValue(&Builtin{name: name, arity: arity, fn: fn}))
	}

	// print renders its argument followed by a newline and yields nil.
	define("print", 1, func(in *Interp, args []Value) (Value, error) {
		fmt.Fprintln(in.out, args[0].Render())
		return Nil, nil
	})

	// readLine reads one line from input, without the newline. End of
	// input yields nil.
	define("readLine", 0, func(in *Interp, args []Value) (Value, error) {
		line, err := in.in.ReadString('\n')
		if err == io.EOF && line == "" {
			return Nil, nil
		}
		if err != nil && err != io.EOF {
			return Nil, err
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return StringValue(line), nil
	})

	// clock yields seconds of wall time since interpreter start.
	define("clock", 0, func(in *Interp, args []Value) (Value, error) {
		return NumberValue(time.Since(startTime).Seconds()), nil
	})

	// string yields the canonical rendering of any value.
	define("string", 1, func(in *Interp, args []Value) (Value, error) {
		return StringValue(args[0].Render()), nil
	})

	// number parses a string as a number, passes numbers through, and
	// yields nil for anything unparseable or of another kind.
	define("number", 1, func(in *Interp, args []Value) (Value, error) {
		arg := args[0]
		switch arg.Kind() {
		case KindNumber:
			return arg, nil
		case KindString:
			s, _ := arg.Str()
			n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return Nil, nil
			}
			return NumberValue(n), nil
		}
		return Nil, nil
	})

	// typeOf yields the value's kind as a capitalized atom.
	define("typeOf", 1, func(in *Interp, args []Value) (Value, error) {
		return AtomValue(args[0].Kind().String()), nil
	})
}
