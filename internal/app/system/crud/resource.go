// Package crud is the list-page-plus-modal pattern shared by every record
// table in the console. A Resource describes one record type: its form
// fields, its table columns and where it lives; Handler turns that into the
// list, add, view, edit and delete routes.
package crud

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
)

// Kind selects the form control rendered for a field.
type Kind string

const (
	Text     Kind = "text"
	Email    Kind = "email"
	Tel      Kind = "tel"
	Number   Kind = "number"
	Date     Kind = "date"
	Select   Kind = "select"
	TextArea Kind = "textarea"
)

// DateLayout is the wire format of date inputs.
const DateLayout = "2006-01-02"

// Field is one form input bound to a record.
type Field[T any] struct {
	Name        string
	Label       string
	Kind        Kind
	Placeholder string

	// Rules is a validator tag applied to the trimmed posted string,
	// e.g. "required,max=200" or "omitempty,email".
	Rules string

	// Options restricts a Select. OptionsFrom supplies them at render time
	// when they come from another collection.
	Options     []string
	OptionsFrom func(ctx context.Context) ([]string, error)

	// Default pre-fills the add form.
	Default string

	Get func(*T) string
	Set func(*T, string) error

	// HideInView leaves the field out of the details page.
	HideInView bool
}

// Required reports whether the field carries the required rule.
func (f Field[T]) Required() bool {
	return slices.Contains(strings.Split(f.Rules, ","), "required")
}

// Column is one table column.
type Column[T any] struct {
	Label string
	Value func(*T) string
	// Badge renders the value as a status pill.
	Badge bool
	// Primary links the value to the record's details page.
	Primary bool
}

// Action is an extra row link, e.g. {Label: "Receipt", Path: "receipt"}.
type Action struct {
	Label string
	Path  string
}

// Stat is a summary card above the table.
type Stat struct {
	Label string
	Value string
	Tone  string
}

// Resource describes one record type managed through the generic pages.
type Resource[T any] struct {
	// Base is the list URL, e.g. "/members/clergy".
	Base     string
	Singular string
	Plural   string
	Subtitle string

	// Home, when set, is a page outside Base whose modals also post here,
	// e.g. the HR page for employees. Return URLs may point under it.
	Home string

	Store   *memstore.Collection[T]
	Fields  []Field[T]
	Columns []Column[T]

	// Actions add per-row links to extra modal routes under {base}/{id}/.
	Actions []Action

	// ReadOnly records are created and deleted but never edited.
	ReadOnly bool

	// Title names a record in headings and toasts.
	Title func(*T) string

	// Prepare runs after binding and before the store write, e.g. to check
	// a date range.
	Prepare func(ctx context.Context, rec *T, isNew bool) error

	// Insert, when set, replaces Store.Insert for new records. Stores that
	// number records from their neighbours do it here, under their lock.
	Insert func(ctx context.Context, rec T) (T, error)

	// Stats computes summary cards over all records.
	Stats func(rows []T) []Stat

	// OnChange is told about every successful mutation ("created",
	// "updated", "deleted").
	OnChange func(ctx context.Context, action string, rec T)
}

func (res *Resource[T]) insert(ctx context.Context, rec T) (T, error) {
	if res.Insert != nil {
		return res.Insert(ctx, rec)
	}
	return res.Store.Insert(ctx, rec)
}

// Collection returns the store name used for logging and metrics.
func (res *Resource[T]) Collection() string { return res.Store.Name() }

// ErrInvalid wraps a field conversion failure; its message is user-facing.
var ErrInvalid = errors.New("invalid value")

// StringField binds a string.
func StringField[T any](name, label string, kind Kind, rules string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Name:  name,
		Label: label,
		Kind:  kind,
		Rules: rules,
		Get:   func(t *T) string { return *ptr(t) },
		Set: func(t *T, v string) error {
			*ptr(t) = v
			return nil
		},
	}
}

// SelectField binds a string limited to options.
func SelectField[T any](name, label, rules string, options []string, ptr func(*T) *string) Field[T] {
	f := StringField(name, label, Select, rules, ptr)
	f.Options = options
	if len(options) > 0 {
		f.Default = options[0]
	}
	return f
}

// IntField binds a non-negative int. An empty value stores 0.
func IntField[T any](name, label, rules string, ptr func(*T) *int) Field[T] {
	return Field[T]{
		Name:  name,
		Label: label,
		Kind:  Number,
		Rules: rules,
		Get: func(t *T) string {
			return strconv.Itoa(*ptr(t))
		},
		Set: func(t *T, v string) error {
			if v == "" {
				*ptr(t) = 0
				return nil
			}
			n, err := strconv.Atoi(strings.ReplaceAll(v, ",", ""))
			if err != nil {
				return fmt.Errorf("%w: %s must be a whole number.", ErrInvalid, label)
			}
			if n < 0 {
				return fmt.Errorf("%w: %s cannot be negative.", ErrInvalid, label)
			}
			*ptr(t) = n
			return nil
		},
	}
}

// MoneyField binds a non-negative amount.
func MoneyField[T any](name, label, rules string, ptr func(*T) *float64) Field[T] {
	return Field[T]{
		Name:        name,
		Label:       label,
		Kind:        Number,
		Rules:       rules,
		Placeholder: "0.00",
		Get: func(t *T) string {
			return strconv.FormatFloat(*ptr(t), 'f', 2, 64)
		},
		Set: func(t *T, v string) error {
			if v == "" {
				*ptr(t) = 0
				return nil
			}
			n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
			if err != nil {
				return fmt.Errorf("%w: %s must be a number.", ErrInvalid, label)
			}
			if n < 0 {
				return fmt.Errorf("%w: %s cannot be negative.", ErrInvalid, label)
			}
			*ptr(t) = n
			return nil
		},
	}
}

// DateField binds a calendar date posted as YYYY-MM-DD.
func DateField[T any](name, label, rules string, ptr func(*T) *time.Time) Field[T] {
	return Field[T]{
		Name:  name,
		Label: label,
		Kind:  Date,
		Rules: rules,
		Get: func(t *T) string {
			if d := *ptr(t); !d.IsZero() {
				return d.Format(DateLayout)
			}
			return ""
		},
		Set: func(t *T, v string) error {
			if v == "" {
				*ptr(t) = time.Time{}
				return nil
			}
			d, err := time.Parse(DateLayout, v)
			if err != nil {
				return fmt.Errorf("%w: %s must be a date.", ErrInvalid, label)
			}
			*ptr(t) = d
			return nil
		},
	}
}

// userMessage strips the ErrInvalid prefix from a Set error.
func userMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalid.Error()+": ")
}

// OptionsOf lists a field of every record in c, for selects that point at
// another collection.
func OptionsOf[T any](c *memstore.Collection[T], value func(T) string) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		rows, err := c.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			if v := value(r); v != "" && !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
		return out, nil
	}
}
