package cjson

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// checkStrings walks every exported field reachable from v and fails on the
// first string that isn't valid UTF-8. Types with custom marshalers are
// walked too, since they usually delegate back to encoding/json, which would
// otherwise substitute U+FFFD without complaint.
func checkStrings(v interface{}) error {
	return walk(reflect.ValueOf(v), 0)
}

// Guards against cyclic pointers.
const maxDepth = 1000

func walk(v reflect.Value, depth int) error {
	if depth > maxDepth {
		return &EncodeError{Reason: "value nested too deeply"}
	}
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return walk(v.Elem(), depth+1)
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return &EncodeError{Reason: fmt.Sprintf("invalid UTF-8 in string %q", v.String())}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() || t.Field(i).Tag.Get("json") == "-" {
				continue
			}
			if err := walk(v.Field(i), depth+1); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			// Raw bytes: base64 for slices, or pre-encoded JSON checked after marshalling.
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := walk(iter.Key(), depth+1); err != nil {
				return err
			}
			if err := walk(iter.Value(), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
