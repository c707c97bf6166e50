package derive

import (
	"fmt"
	"reflect"

	"github.com/typeforge/derive/internal/model"
	"github.com/typeforge/derive/internal/registry"
)

// Populate fills an instance of a tagged schema struct (the shape handed to
// schema.FromStruct) from a derived value tree. target must be a non-nil
// pointer to the struct the schema was built from.
func Populate(r *Result, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("populate target must be a non-nil pointer, got %T", target)
	}
	return populateObject(r.Root, rv.Elem())
}

func populateObject(o *Object, sv reflect.Value) error {
	if sv.Kind() != reflect.Struct {
		return fmt.Errorf("cannot populate %s from object %s", sv.Type(), o.Schema.Name)
	}
	for _, f := range o.Fields {
		fv := sv.FieldByName(f.Param.Name)
		if !fv.IsValid() || !fv.CanSet() {
			continue
		}
		if err := populateValue(f.Value, fv); err != nil {
			return fmt.Errorf("%s.%s: %w", o.Schema.Name, f.Param.Name, err)
		}
	}
	return nil
}

func populateValue(v Value, fv reflect.Value) error {
	switch t := v.(type) {
	case Absent:
		return nil

	case Str:
		if fv.Kind() != reflect.String {
			return fmt.Errorf("expected string field, got %s", fv.Type())
		}
		fv.SetString(string(t))
		return nil

	case Flag:
		if fv.Kind() != reflect.Bool {
			return fmt.Errorf("expected bool field, got %s", fv.Type())
		}
		fv.SetBool(bool(t))
		return nil

	case Position:
		return assign(fv, reflect.ValueOf(t))

	case FlagSet:
		return assign(fv, reflect.ValueOf(model.ParamFlags(t)))

	case Annot:
		return assign(fv, reflect.ValueOf(t.Annotation))

	case Annots:
		return assign(fv, reflect.ValueOf([]model.Annotation(t)))

	case Ref:
		return populateRef(t.Target, fv)

	case *Object:
		if fv.Kind() == reflect.Pointer {
			p := reflect.New(fv.Type().Elem())
			if err := populateObject(t, p.Elem()); err != nil {
				return err
			}
			fv.Set(p)
			return nil
		}
		return populateObject(t, fv)

	case List:
		if fv.Kind() != reflect.Slice {
			return fmt.Errorf("expected slice field, got %s", fv.Type())
		}
		s := reflect.MakeSlice(fv.Type(), len(t), len(t))
		for i, e := range t {
			if err := populateValue(e, s.Index(i)); err != nil {
				return err
			}
		}
		fv.Set(s)
		return nil

	case NamedMap:
		if fv.Kind() != reflect.Map {
			return fmt.Errorf("expected map field, got %s", fv.Type())
		}
		m := reflect.MakeMapWithSize(fv.Type(), len(t.Keys))
		for _, k := range t.Keys {
			ev := reflect.New(fv.Type().Elem()).Elem()
			if err := populateValue(t.Items[k], ev); err != nil {
				return err
			}
			m.SetMapIndex(reflect.ValueOf(k), ev)
		}
		fv.Set(m)
		return nil

	default:
		return fmt.Errorf("cannot populate field %s from %T", fv.Type(), v)
	}
}

// populateRef hands a contextual reference to the field: ref-typed fields
// get the handle itself, anything else gets the resolved instance when the
// types line up. Unresolved refs leave the field zero; finalization reports
// them separately.
func populateRef(ref *registry.ValueRef, fv reflect.Value) error {
	if fv.Type() == reflect.TypeOf((*registry.ValueRef)(nil)) {
		fv.Set(reflect.ValueOf(ref))
		return nil
	}
	instance, ok := ref.Value()
	if !ok {
		return nil
	}
	return assign(fv, reflect.ValueOf(instance))
}

func assign(fv reflect.Value, v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	if !v.Type().AssignableTo(fv.Type()) {
		if v.Type().ConvertibleTo(fv.Type()) {
			fv.Set(v.Convert(fv.Type()))
			return nil
		}
		return fmt.Errorf("cannot assign %s to field %s", v.Type(), fv.Type())
	}
	fv.Set(v)
	return nil
}
