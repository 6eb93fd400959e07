// Package validate provides struct-tag validation for request inputs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required        field must not be zero/empty
//	nullable        if empty, skip all remaining rules for this field
//	email           valid email address
//	integer         whole number
//	min=N           string: min char length | number: min value
//	max=N           string: max char length | number: max value
//	gt=N            number > N
//	gte=N           number >= N
//	lte=N           number <= N
//	in=a,b,c        value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Email string `json:"email" validate:"required,email"`
//	    Qty   int    `json:"qty"   validate:"required,gte=1"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
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

		// `in=a,b,c` swallows the following comma-separated tokens.
		rules = mergeInRule(rules)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
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

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRe.MatchString(asString(v)) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(asString(v), 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		n, _ := strconv.ParseFloat(param, 64)
		if v.Kind() == reflect.String {
			if float64(len(v.String())) < n {
				return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
			}
		} else if num, ok := asNumber(v); ok && num < n {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "max":
		n, _ := strconv.ParseFloat(param, 64)
		if v.Kind() == reflect.String {
			if float64(len(v.String())) > n {
				return fmt.Sprintf("The %s field may not be greater than %s characters.", field, param)
			}
		} else if num, ok := asNumber(v); ok && num > n {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "gt":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num <= n {
			return fmt.Sprintf("The %s field must be greater than %s.", field, param)
		}

	case "gte":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num < n {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lte":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := asNumber(v); ok && num > n {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "in":
		allowed := strings.Split(param, ",")
		got := asString(v)
		for _, a := range allowed {
			if got == a {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// mergeInRule re-joins tokens split off an `in=a,b,c` rule.
func mergeInRule(rules []string) []string {
	out := make([]string, 0, len(rules))
	for i := 0; i < len(rules); i++ {
		r := rules[i]
		if strings.HasPrefix(r, "in=") {
			parts := []string{r}
			for i+1 < len(rules) && !strings.Contains(rules[i+1], "=") && !isKnownRule(rules[i+1]) {
				i++
				parts = append(parts, rules[i])
			}
			r = strings.Join(parts, ",")
		}
		out = append(out, r)
	}
	return out
}

func isKnownRule(s string) bool {
	switch s {
	case "required", "nullable", "email", "integer":
		return true
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) string {
	return fmt.Sprintf("%v", v.Interface())
}

func asNumber(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		n, err := strconv.ParseFloat(v.String(), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
