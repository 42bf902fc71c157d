package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// Validator is implemented by config structs that need validation.
type Validator interface {
	Validate() error
}

// ErrInvalidValue is returned when an environment variable or default value cannot be parsed.
type ErrInvalidValue struct {
	Field  string
	EnvVar string
	Value  string
	Err    error
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s=%q (field: %s): %v", e.EnvVar, e.Value, e.Field, e.Err)
}

func (e ErrInvalidValue) Unwrap() error {
	return e.Err
}

// ErrNotStructPointer is returned when called with a non-pointer or non-struct argument.
type ErrNotStructPointer struct {
	Type string
}

func (e ErrNotStructPointer) Error() string {
	return fmt.Sprintf("env: argument must be a pointer to struct, got %s", e.Type)
}

// ErrUnsupportedType is returned when a field has an unsupported type.
type ErrUnsupportedType struct {
	Kind string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Kind)
}

// Supported struct tags:
//   - env:"VAR_NAME"   maps field to environment variable VAR_NAME
//   - default:"value"  value used by ApplyDefaults and Parse
//
// Supported field types: string, bool, int kinds and time.Duration
// (Go duration strings like "5s"). Nested structs are walked recursively;
// time.Time is treated as a leaf and skipped.

// Parse applies default tags and then environment overrides, validating
// like Load. A variable set to the empty string still overrides a string
// field's default.
func Parse(v any) error {
	if err := ApplyDefaults(v); err != nil {
		return err
	}
	return Load(v)
}

// ApplyDefaults sets every field with a default tag to that value.
// It does not read the environment and does not validate.
func ApplyDefaults(v any) error {
	root, err := structValue(v)
	if err != nil {
		return err
	}
	return walk(root, func(field reflect.Value, sf reflect.StructField) error {
		def, ok := sf.Tag.Lookup("default")
		if !ok {
			return nil
		}
		if err := setField(field, def); err != nil {
			return ErrInvalidValue{Field: sf.Name, EnvVar: sf.Tag.Get("env"), Value: def, Err: err}
		}
		return nil
	}, nil)
}

// Load overrides fields from set environment variables, leaving unset ones
// as they are. Nested structs implementing Validator are validated after
// they are loaded, and the root last.
func Load(v any) error {
	root, err := structValue(v)
	if err != nil {
		return err
	}

	err = walk(root, func(field reflect.Value, sf reflect.StructField) error {
		key := sf.Tag.Get("env")
		if key == "" {
			return nil
		}
		raw, exists := os.LookupEnv(key)
		if !exists {
			return nil
		}
		if err := setField(field, raw); err != nil {
			return ErrInvalidValue{Field: sf.Name, EnvVar: key, Value: raw, Err: err}
		}
		return nil
	}, validateNested)
	if err != nil {
		return err
	}

	if validator, ok := v.(Validator); ok {
		return validator.Validate()
	}
	return nil
}

func structValue(v any) (reflect.Value, error) {
	ptrVal := reflect.ValueOf(v)
	if ptrVal.Kind() != reflect.Pointer || ptrVal.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotStructPointer{Type: fmt.Sprintf("%T", v)}
	}
	return ptrVal.Elem(), nil
}

func validateNested(field reflect.Value) error {
	if !field.CanAddr() {
		return nil
	}
	if validator, ok := field.Addr().Interface().(Validator); ok {
		return validator.Validate()
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// walk calls leaf for every settable non-struct field and after for every
// nested struct once its fields were visited.
func walk(val reflect.Value, leaf func(reflect.Value, reflect.StructField) error, after func(reflect.Value) error) error {
	typ := val.Type()

	for i, n := 0, val.NumField(); i < n; i++ {
		field := val.Field(i)
		sf := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if field.Type() == timeType {
				continue
			}
			if err := walk(field, leaf, after); err != nil {
				return err
			}
			if after != nil {
				if err := after(field); err != nil {
					return err
				}
			}
			continue
		}

		if err := leaf(field, sf); err != nil {
			return err
		}
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}

		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
		return nil

	default:
		return ErrUnsupportedType{Kind: field.Kind().String()}
	}
}
