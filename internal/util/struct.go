package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized reports whether all nillable fields of the struct
// pointed to by s are non-nil. Used by the server readiness check to catch
// partially wired dependency graphs.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("not a struct")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		switch field.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if field.IsNil() {
				return errors.Errorf("struct field %q is not initialized", t.Field(i).Name)
			}
		default:
			// value types are always considered initialized
		}
	}

	return nil
}
