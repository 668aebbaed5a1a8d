package service

import (
	"encoding/json" // Numeric fields sent as numbers or strings
	"errors"        // Error inspection
	"fmt"           // Message formatting
	"html"          // Entity unescaping
	"reflect"       // JSON tag lookup
	"strings"       // String manipulation
	"time"          // Date parsing

	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/microcosm-cc/bluemonday"     // HTML sanitizer used as a markup detector
)

var markupPolicy = bluemonday.StrictPolicy()

// NewValidator returns a validator that reports fields by their JSON names
// and knows the nohtml rule
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nohtml", noMarkup) // Only fails on an empty tag name
	return v
}

// noMarkup rejects strings that contain HTML elements. Plain text that merely
// uses < or > (such as "guests > 2") passes and is stored unchanged.
func noMarkup(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !strings.Contains(s, "<") {
		return true
	}
	return html.UnescapeString(markupPolicy.Sanitize(s)) == html.UnescapeString(s)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "number", "numeric":
		return fe.Field() + " must be a number"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "nohtml":
		return fe.Field() + " must not contain HTML markup"
	default:
		return fe.Field() + " is invalid"
	}
}

// problems collects hand-written field checks alongside validator output
type problems []string

func (p *problems) add(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err() *Error {
	if len(p) == 0 {
		return nil
	}
	return newError(KindValidation, strings.Join(p, ", "))
}

// merge folds a validator error into the collected problems
func (p *problems) merge(err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			*p = append(*p, fieldMessage(fe))
		}
		return
	}
	*p = append(*p, err.Error())
}

func parseInt(field string, n json.Number, p *problems) (int, bool) {
	v, err := n.Int64()
	if err != nil {
		p.add("%s must be an integer", field)
		return 0, false
	}
	return int(v), true
}

func parseFloat(field string, n json.Number, p *problems) (float64, bool) {
	v, err := n.Float64()
	if err != nil {
		p.add("%s must be a number", field)
		return 0, false
	}
	return v, true
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// An empty string yields nil.
func parseDate(field, s string, p *problems) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	p.add("%s must be a date (YYYY-MM-DD or RFC 3339)", field)
	return nil, false
}
