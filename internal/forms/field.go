package forms

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field is a leaf of the checkout form tree: a value, the rule tags
// attached to it, and whether the user has touched it yet. Validity is
// derived from the rules on demand. Fields are safe for concurrent use;
// the cart and checkout handlers mutate the same session form from
// separate requests.
type Field struct {
	mu      sync.RWMutex
	value   any
	rules   string
	touched bool
}

func NewField(rules string) *Field {
	return &Field{rules: rules}
}

func (f *Field) Value() any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

func (f *Field) SetValue(v any) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
}

func (f *Field) Touch() {
	f.mu.Lock()
	f.touched = true
	f.mu.Unlock()
}

func (f *Field) Touched() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.touched
}

// String returns the value as a string, or "" when the field holds
// something else.
func (f *Field) String() string {
	s, _ := f.Value().(string)
	return s
}

func (f *Field) Valid() bool {
	return len(f.FailedRules()) == 0
}

// FailedRules reports the tags of every rule the current value fails.
func (f *Field) FailedRules() []string {
	if f.rules == "" {
		return nil
	}

	v := f.Value()
	if v == nil {
		v = ""
	}

	// validator.Var does not fail "required" for a zero-valued struct,
	// so country/state reference values are checked by hand.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Struct {
		if hasRule(f.rules, "required") && rv.IsZero() {
			return []string{"required"}
		}
		return nil
	}

	err := validate.Var(v, f.rules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid"}
	}

	tags := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		tags = append(tags, fe.Tag())
	}
	return tags
}

func hasRule(rules, tag string) bool {
	for _, r := range strings.Split(rules, ",") {
		if name, _, _ := strings.Cut(r, "="); name == tag {
			return true
		}
	}
	return false
}

// Reset clears the value and the touched flag.
func (f *Field) Reset() {
	f.mu.Lock()
	f.value = nil
	f.touched = false
	f.mu.Unlock()
}
