package pagefactory

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrArguments marks an InvocationError caused by arguments that do not fit
// the operation's parameter list.
var ErrArguments = errors.New("arguments do not fit")

// Dispatch invokes the action titled title on container c with args passed
// positionally. The first action whose titles include title is invoked;
// identically titled actions further down the model are never considered.
func (e *Engine) Dispatch(c any, title string, args ...any) error {
	return e.invoke(c, KindAction, title, args)
}

// DispatchInBlock invokes an action declared on the first block addressed
// by path.
func (e *Engine) DispatchInBlock(root any, path, title string, args ...any) error {
	block, err := e.FindBlock(root, path)
	if err != nil {
		return err
	}

	err = e.invoke(block.Value, KindAction, title, args)

	// Only a miss reported by invoke itself is rewritten; failures from inside
	// the action arrive as an InvocationError and pass through.
	if nf, ok := err.(*NotFoundError); ok && nf.Kind == KindAction {
		return &NotFoundError{Kind: KindAction, Title: title, Path: path, Container: e.DisplayTitle(root)}
	}
	return err
}

// FireValidationRule invokes the validation rule titled title on c.
func (e *Engine) FireValidationRule(c any, title string, args ...any) error {
	return e.invoke(c, KindValidationRule, title, args)
}

func (e *Engine) invoke(c any, kind Kind, title string, args []any) error {
	def, err := e.Definition(c)
	if err != nil {
		return err
	}

	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.Kind != kind || !e.matches(b, title) {
			continue
		}

		e.logger.Debug("dispatching", "kind", kind.String(), "title", title, "container", def.Title, "args", len(args))
		return e.call(c, def, b, title, args)
	}

	return &NotFoundError{Kind: kind, Title: title, Container: def.Title}
}

func (e *Engine) call(c any, def *Definition, b *Binding, title string, args []any) (err error) {
	recv, err := e.receiver(c, def, b)
	if err != nil {
		return err
	}

	in, err := bindArguments(b.fn.Type(), recv, args)
	if err != nil {
		return &InvocationError{Title: title, Container: def.Title, Cause: err}
	}

	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{Title: title, Container: def.Title, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	out := b.fn.Call(in)
	if len(out) == 1 && !out[0].IsNil() {
		return &InvocationError{Title: title, Container: def.Title, Cause: out[0].Interface().(error)}
	}

	return nil
}

func (e *Engine) receiver(c any, def *Definition, b *Binding) (recv any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{
				Operation: "receiver access",
				Title:     e.Label(b),
				Container: def.Title,
				Cause:     fmt.Errorf("accessor panicked: %v", r),
			}
		}
	}()

	recv = b.receiver(c)
	if isNil(recv) {
		return nil, &InternalError{
			Operation: "receiver access",
			Title:     e.Label(b),
			Container: def.Title,
			Cause:     errors.New("inherited receiver is nil"),
		}
	}
	return recv, nil
}

// bindArguments builds the reflect call arguments for fn: the receiver
// followed by args, each assignable to its parameter.
func bindArguments(fn reflect.Type, recv any, args []any) ([]reflect.Value, error) {
	params := fn.NumIn() - 1

	if fn.IsVariadic() {
		if len(args) < params-1 {
			return nil, fmt.Errorf("%w: expects at least %d arguments, got %d", ErrArguments, params-1, len(args))
		}
	} else if len(args) != params {
		return nil, fmt.Errorf("%w: expects %d arguments, got %d", ErrArguments, params, len(args))
	}

	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, reflect.ValueOf(recv))

	for i, arg := range args {
		var target reflect.Type
		switch {
		case fn.IsVariadic() && i >= params-1:
			target = fn.In(fn.NumIn() - 1).Elem()
		default:
			target = fn.In(i + 1)
		}

		v, err := argumentValue(arg, target)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrArguments, i, err)
		}
		in = append(in, v)
	}

	return in, nil
}

func argumentValue(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch target.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", target)
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(target) {
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
	}

	return v, nil
}
