package pagefactory

import (
	"fmt"
	"reflect"
)

// Kind classifies a declared member of a container.
type Kind int

const (
	KindElement Kind = iota + 1
	KindBlock
	KindList
	KindAction
	KindValidationRule
	KindRedirect
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindBlock:
		return "block"
	case KindList:
		return "list"
	case KindAction:
		return "action"
	case KindValidationRule:
		return "validation rule"
	case KindRedirect:
		return "redirect"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Binding is one declared member of a container type. Bindings are computed
// once per type by the Registry and are read-only afterwards.
type Binding struct {
	Kind   Kind
	Titles []string
	// Type is the declared type: the value type for elements, blocks and lists,
	// the function type for actions and validation rules.
	Type reflect.Type
	// Target is the destination page type of a redirect binding.
	Target reflect.Type

	get      func(c any) any
	receiver func(c any) any
	fn       reflect.Value
}

// Title returns the primary title of the binding.
func (b *Binding) Title() string {
	if len(b.Titles) == 0 {
		return ""
	}
	return b.Titles[0]
}

// Matches reports whether title equals one of the binding's recorded titles.
// Comparison is exact: case, whitespace and locale are not folded. A binding
// without a title never matches.
func (b *Binding) Matches(title string) bool {
	for _, t := range b.Titles {
		if t != "" && t == title {
			return true
		}
	}
	return false
}

// value reads the bound value from container c. A panicking accessor is
// reported as an InternalError.
func (b *Binding) value(c any, container string) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{
				Operation: "access",
				Title:     b.Title(),
				Container: container,
				Cause:     fmt.Errorf("accessor panicked: %v", r),
			}
		}
	}()
	return b.get(c), nil
}

// inherited rebases b onto a child type whose instances reach the parent
// instance through up.
func (b Binding) inherited(up func(c any) any) Binding {
	out := b
	out.Titles = append([]string(nil), b.Titles...)
	if b.get != nil {
		get := b.get
		out.get = func(c any) any { return get(up(c)) }
	}
	if b.receiver != nil {
		recv := b.receiver
		out.receiver = func(c any) any { return recv(up(c)) }
	}
	return out
}
