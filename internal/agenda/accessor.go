package agenda

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrInvalidConfig is returned when a required piece of agenda configuration
// is missing.
var ErrInvalidConfig = errors.New("agenda: invalid configuration")

// Accessor reads one field off an event record.
type Accessor[T any] interface {
	Resolve(event any) T
}

// Field returns an Accessor that looks name up on the event: a map key for
// map[string]any records, otherwise an exported struct field or a
// zero-argument method of that name. A missing field or a value of the
// wrong type resolves to T's zero value; Accessors.Check catches a
// misspelled name before that happens.
func Field[T any](name string) Accessor[T] {
	return fieldAccessor[T]{name: name}
}

// Func returns an Accessor backed by fn.
func Func[T any](fn func(event any) T) Accessor[T] {
	return funcAccessor[T](fn)
}

type fieldAccessor[T any] struct {
	name string
}

func (a fieldAccessor[T]) Resolve(event any) T {
	var zero T
	v, ok := lookup(event, a.name)
	if !ok {
		return zero
	}
	out, ok := v.(T)
	if !ok {
		return zero
	}
	return out
}

func (a fieldAccessor[T]) String() string { return "field(" + a.name + ")" }

// check reports a name that does not exist on a struct record, or that
// holds a value of another type. Absent map keys are missing data, not
// misconfiguration.
func (a fieldAccessor[T]) check(event any) error {
	v, ok := lookup(event, a.name)
	if !ok {
		if _, isMap := event.(map[string]any); isMap {
			return nil
		}
		return fmt.Errorf("%w: %T has no field or method %q", ErrInvalidConfig, event, a.name)
	}
	if v == nil {
		return nil
	}
	if _, ok := v.(T); !ok {
		var zero T
		return fmt.Errorf("%w: %q on %T is %T, want %T", ErrInvalidConfig, a.name, event, v, zero)
	}
	return nil
}

type checker interface {
	check(event any) error
}

type funcAccessor[T any] func(event any) T

func (f funcAccessor[T]) Resolve(event any) T { return f(event) }

func lookup(event any, name string) (any, bool) {
	if event == nil {
		return nil, false
	}
	if m, ok := event.(map[string]any); ok {
		v, ok := m[name]
		return v, ok
	}

	rv := reflect.ValueOf(event)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if m := rv.MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
		return m.Call(nil)[0].Interface(), true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	f := rv.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}

// Accessors groups the field readers the agenda needs.
type Accessors struct {
	Start   Accessor[time.Time]
	End     Accessor[time.Time]
	AllDay  Accessor[bool]
	Title   Accessor[string]
	Tooltip Accessor[string]
}

// DefaultAccessors reads the conventional field names of model.Event.
func DefaultAccessors() Accessors {
	return Accessors{
		Start:   Field[time.Time]("Start"),
		End:     Field[time.Time]("End"),
		AllDay:  Field[bool]("AllDay"),
		Title:   Field[string]("Title"),
		Tooltip: Field[string]("Tooltip"),
	}
}

// Validate reports the first missing accessor as ErrInvalidConfig.
func (a Accessors) Validate() error {
	switch {
	case a.Start == nil:
		return fmt.Errorf("%w: start accessor is required", ErrInvalidConfig)
	case a.End == nil:
		return fmt.Errorf("%w: end accessor is required", ErrInvalidConfig)
	case a.AllDay == nil:
		return fmt.Errorf("%w: allDay accessor is required", ErrInvalidConfig)
	case a.Title == nil:
		return fmt.Errorf("%w: title accessor is required", ErrInvalidConfig)
	case a.Tooltip == nil:
		return fmt.Errorf("%w: tooltip accessor is required", ErrInvalidConfig)
	}
	return nil
}

// Check resolves every Field accessor against a sample record and reports
// names the record does not have. Func accessors are trusted.
func (a Accessors) Check(sample any) error {
	if sample == nil {
		return nil
	}
	if rv := reflect.ValueOf(sample); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	for _, acc := range []any{a.Start, a.End, a.AllDay, a.Title, a.Tooltip} {
		if c, ok := acc.(checker); ok {
			if err := c.check(sample); err != nil {
				return err
			}
		}
	}
	return nil
}
