// Package validate provides struct-tag validation for request input.
//
// Rules are comma-separated in the `validate` tag:
//
//	required      field must not be zero/empty
//	nullable      if empty, skip all remaining rules for this field
//	numeric       any number (ints and decimals)
//	integer       whole number
//	url           http/https URL
//	min=N         string: min char length | number: min value
//	max=N         string: max char length | number: max value
//	gte=N         numeric value >= N (strings are parsed)
//	lte=N         numeric value <= N (strings are parsed)
//	in=a,b,c      value must be one of the listed items
//
// Example:
//
//	type ProductForm struct {
//	    Name  string `json:"name"  validate:"required,max=255"`
//	    Price string `json:"price" validate:"required,numeric,gte=0"`
//	    Stock string `json:"stock" validate:"required,integer,gte=0"`
//	}
package validate

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → message; an empty map means valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors reports whether the error map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "numeric":
		// ParseFloat accepts "NaN" and "Inf"; neither is a number a
		// form may submit.
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprintf("The %s must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field)
		}

	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}

	case "min":
		n := mustParseFloat(param)
		if v.Kind() == reflect.String {
			if float64(len([]rune(raw))) < n {
				return fmt.Sprintf("The %s must be at least %s characters.", field, param)
			}
		} else if toFloat(v) < n {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}

	case "max":
		n := mustParseFloat(param)
		if v.Kind() == reflect.String {
			if float64(len([]rune(raw))) > n {
				return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
			}
		} else if toFloat(v) > n {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}

	case "gte":
		// Written as !(>=) so NaN fails the bound rather than
		// sliding past it.
		got, ok := numericValue(v, raw)
		if !ok || !(got >= mustParseFloat(param)) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}

	case "lte":
		got, ok := numericValue(v, raw)
		if !ok || !(got <= mustParseFloat(param)) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}

	case "in":
		for _, item := range strings.Split(param, ",") {
			if raw == item {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

// numericValue returns the field as a float64. Strings are parsed; a
// string that is not a number reports ok=false.
func numericValue(v reflect.Value, raw string) (float64, bool) {
	if v.Kind() == reflect.String {
		f, err := strconv.ParseFloat(raw, 64)
		return f, err == nil
	}
	return toFloat(v), true
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return 0
	}
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// jsonFieldName prefers the json tag over the Go field name.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
