// Package expect provides fluent assertions for example bodies.
//
// Assertions return an error instead of failing a testing.T, which fits
// bodies of the form func(ctx context.Context) error:
//
//	bdd.It("greets", func(ctx context.Context) error {
//		return expect.That(greet("bob")).Equals("hello, bob")
//	})
//
// Multiple assertions combine with All:
//
//	return expect.All(
//		expect.That(resp.Code).Equals(200),
//		expect.That(resp.Body).Contains("ok"),
//	)
package expect

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Assertion wraps an actual value awaiting a check.
type Assertion struct {
	actual any
}

// That starts a fluent assertion on the given value.
func That(actual any) *Assertion {
	return &Assertion{actual: actual}
}

// All combines assertion results; nil entries are dropped. It returns nil
// when every assertion passed.
func All(errs ...error) error {
	return errors.Join(errs...)
}

// Equals asserts deep equality with the expected value.
func (a *Assertion) Equals(expected any) error {
	if reflect.DeepEqual(a.actual, expected) {
		return nil
	}
	return fmt.Errorf("expected %#v to equal %#v", a.actual, expected)
}

// NotEquals asserts the value differs from the given one.
func (a *Assertion) NotEquals(unexpected any) error {
	if !reflect.DeepEqual(a.actual, unexpected) {
		return nil
	}
	return fmt.Errorf("expected value to differ from %#v", unexpected)
}

// IsNil asserts the value is nil, including typed nil pointers, slices,
// maps, channels, functions, and interfaces.
func (a *Assertion) IsNil() error {
	if isNil(a.actual) {
		return nil
	}
	return fmt.Errorf("expected %#v to be nil", a.actual)
}

// IsNotNil asserts the value is non-nil.
func (a *Assertion) IsNotNil() error {
	if !isNil(a.actual) {
		return nil
	}
	return errors.New("expected value to be non-nil")
}

// IsTrue asserts the value is the boolean true.
func (a *Assertion) IsTrue() error {
	if b, ok := a.actual.(bool); ok && b {
		return nil
	}
	return fmt.Errorf("expected %#v to be true", a.actual)
}

// IsFalse asserts the value is the boolean false.
func (a *Assertion) IsFalse() error {
	if b, ok := a.actual.(bool); ok && !b {
		return nil
	}
	return fmt.Errorf("expected %#v to be false", a.actual)
}

// Contains asserts that a string contains a substring, a slice or array
// contains a deep-equal element, or a map contains a key.
func (a *Assertion) Contains(elem any) error {
	v := reflect.ValueOf(a.actual)
	switch v.Kind() {
	case reflect.String:
		sub, ok := elem.(string)
		if !ok {
			return fmt.Errorf("expected a string substring, got %T", elem)
		}
		if strings.Contains(v.String(), sub) {
			return nil
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if reflect.DeepEqual(v.Index(i).Interface(), elem) {
				return nil
			}
		}
	case reflect.Map:
		for _, k := range v.MapKeys() {
			if reflect.DeepEqual(k.Interface(), elem) {
				return nil
			}
		}
	default:
		return fmt.Errorf("cannot check containment on %T", a.actual)
	}
	return fmt.Errorf("expected %#v to contain %#v", a.actual, elem)
}

// HasLength asserts the value's length. Supported for strings, slices,
// arrays, maps, and channels.
func (a *Assertion) HasLength(n int) error {
	v := reflect.ValueOf(a.actual)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		if v.Len() == n {
			return nil
		}
		return fmt.Errorf("expected length %d, got %d", n, v.Len())
	default:
		return fmt.Errorf("cannot check length of %T", a.actual)
	}
}

// GreaterThan asserts a numeric value is strictly greater than the bound.
func (a *Assertion) GreaterThan(bound any) error {
	actual, boundF, err := numericPair(a.actual, bound)
	if err != nil {
		return err
	}
	if actual > boundF {
		return nil
	}
	return fmt.Errorf("expected %v to be greater than %v", a.actual, bound)
}

// LessThan asserts a numeric value is strictly less than the bound.
func (a *Assertion) LessThan(bound any) error {
	actual, boundF, err := numericPair(a.actual, bound)
	if err != nil {
		return err
	}
	if actual < boundF {
		return nil
	}
	return fmt.Errorf("expected %v to be less than %v", a.actual, bound)
}

// MatchesRegexp asserts a string matches the pattern.
func (a *Assertion) MatchesRegexp(pattern string) error {
	s, ok := a.actual.(string)
	if !ok {
		return fmt.Errorf("cannot match regexp against %T", a.actual)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if re.MatchString(s) {
		return nil
	}
	return fmt.Errorf("expected %q to match %q", s, pattern)
}

// ErrorIs asserts the value is an error matching target per errors.Is.
func (a *Assertion) ErrorIs(target error) error {
	err, ok := a.actual.(error)
	if !ok {
		return fmt.Errorf("expected an error, got %T", a.actual)
	}
	if errors.Is(err, target) {
		return nil
	}
	return fmt.Errorf("expected error %v to match %v", err, target)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func numericPair(actual, bound any) (float64, float64, error) {
	a, ok := toFloat(actual)
	if !ok {
		return 0, 0, fmt.Errorf("expected a numeric value, got %T", actual)
	}
	b, ok := toFloat(bound)
	if !ok {
		return 0, 0, fmt.Errorf("expected a numeric bound, got %T", bound)
	}
	return a, b, nil
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
