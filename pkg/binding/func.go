package binding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Func is a backend function whose signature has been inspected once, at
// registration time. Calls only convert values; they never re-derive the
// signature.
//
// Accepted shapes: an optional leading context.Context, any number of
// positional parameters, any number of positional results and an optional
// trailing error. Variadic functions are rejected because their arity is not
// fixed.
type Func struct {
	name     string
	fn       reflect.Value
	params   []reflect.Type
	results  []reflect.Type
	takesCtx bool
	hasErr   bool
}

// FuncOf inspects fn and returns its typed description.
func FuncOf(fn any) (Func, error) {
	if existing, ok := fn.(Func); ok {
		return existing, nil
	}
	if fn == nil {
		return Func{}, errors.New("binding: function is required")
	}
	value := reflect.ValueOf(fn)
	typ := value.Type()
	if typ.Kind() != reflect.Func {
		return Func{}, fmt.Errorf("binding: expected a function, got %T", fn)
	}
	if value.IsNil() {
		return Func{}, errors.New("binding: function is nil")
	}
	if typ.IsVariadic() {
		return Func{}, fmt.Errorf("binding: variadic function %s has no fixed arity", typ)
	}

	out := Func{
		name: functionName(value),
		fn:   value,
	}

	start := 0
	if typ.NumIn() > 0 && typ.In(0) == contextType {
		out.takesCtx = true
		start = 1
	}
	for i := start; i < typ.NumIn(); i++ {
		out.params = append(out.params, typ.In(i))
	}

	numOut := typ.NumOut()
	if numOut > 0 && typ.Out(numOut-1) == errorType {
		out.hasErr = true
		numOut--
	}
	for i := 0; i < numOut; i++ {
		out.results = append(out.results, typ.Out(i))
	}
	return out, nil
}

// MustFuncOf panics when fn is not a usable backend function.
func MustFuncOf(fn any) Func {
	out, err := FuncOf(fn)
	if err != nil {
		panic(err)
	}
	return out
}

// Name returns the short function name ("Greet" for demos.Greet).
func (f Func) Name() string {
	return f.name
}

// Arity reports the number of positional parameters, excluding a leading
// context.
func (f Func) Arity() int {
	return len(f.params)
}

// NumResults reports the number of positional results, excluding a trailing
// error.
func (f Func) NumResults() int {
	return len(f.results)
}

// Params returns the positional parameter types.
func (f Func) Params() []reflect.Type {
	return append([]reflect.Type(nil), f.params...)
}

// Results returns the positional result types.
func (f Func) Results() []reflect.Type {
	return append([]reflect.Type(nil), f.results...)
}

// Call converts args to the parameter types, invokes the function and
// returns its positional results. Panics raised by the function are returned
// as *PanicError.
func (f Func) Call(ctx context.Context, args []any) (results []any, err error) {
	if !f.fn.IsValid() {
		return nil, errors.New("binding: function is not initialised")
	}
	if len(args) != len(f.params) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArity, f.name, len(f.params), len(args))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	in := make([]reflect.Value, 0, len(args)+1)
	if f.takesCtx {
		in = append(in, reflect.ValueOf(ctx))
	}
	for i, arg := range args {
		converted, convErr := convertArg(arg, f.params[i])
		if convErr != nil {
			return nil, &ArgumentError{Index: i, Err: convErr}
		}
		in = append(in, converted)
	}

	defer func() {
		if rec := recover(); rec != nil {
			results = nil
			err = &PanicError{Func: f.name, Value: rec, Stack: debug.Stack()}
		}
	}()

	out := f.fn.Call(in)
	if f.hasErr {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	results = make([]any, len(out))
	for i, value := range out {
		results[i] = value.Interface()
	}
	return results, nil
}

func convertArg(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(target), nil
	}
	value := reflect.ValueOf(arg)
	if value.Type().AssignableTo(target) {
		if target.Kind() == reflect.Interface {
			converted := reflect.New(target).Elem()
			converted.Set(value)
			return converted, nil
		}
		return value, nil
	}

	switch {
	case isInt(target.Kind()):
		n, ok := asFloat(value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
		}
		if n != math.Trunc(n) {
			return reflect.Value{}, fmt.Errorf("%s is not a whole number", formatFloat(n))
		}
		out := reflect.New(target).Elem()
		if out.OverflowInt(int64(n)) || n > math.MaxInt64 || n < math.MinInt64 {
			return reflect.Value{}, fmt.Errorf("%s overflows %s", formatFloat(n), target)
		}
		out.SetInt(int64(n))
		return out, nil
	case isUint(target.Kind()):
		n, ok := asFloat(value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
		}
		if n != math.Trunc(n) || n < 0 {
			return reflect.Value{}, fmt.Errorf("%s is not a non-negative whole number", formatFloat(n))
		}
		out := reflect.New(target).Elem()
		if n > math.MaxUint64 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("%s overflows %s", formatFloat(n), target)
		}
		out.SetUint(uint64(n))
		return out, nil
	case isFloat(target.Kind()):
		n, ok := asFloat(value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
		}
		out := reflect.New(target).Elem()
		out.SetFloat(n)
		return out, nil
	case value.Type().ConvertibleTo(target) && value.Kind() == target.Kind():
		return value.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
}

func asFloat(value reflect.Value) (float64, bool) {
	switch {
	case isInt(value.Kind()):
		return float64(value.Int()), true
	case isUint(value.Kind()):
		return float64(value.Uint()), true
	case isFloat(value.Kind()):
		return value.Float(), true
	default:
		return 0, false
	}
}

func isInt(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

func isNumeric(kind reflect.Kind) bool {
	return isInt(kind) || isUint(kind) || isFloat(kind)
}

func functionName(fn reflect.Value) string {
	info := runtime.FuncForPC(fn.Pointer())
	if info == nil {
		return "func"
	}
	name := info.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	// "demos.Greet", "demos.Hello.func1", "(*T).Method-fm"
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return name
}

func formatFloat(n float64) string {
	return fmt.Sprintf("%g", n)
}
