package validation

import (
	"sort"
	"strings"
)

// Errors collects field-scoped and record-scoped messages of one failed write.
type Errors struct {
	Fields   map[string][]string `json:"errors"`
	NonField []string            `json:"non_field_errors"`
}

func New() *Errors {
	return &Errors{Fields: map[string][]string{}}
}

func (e *Errors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *Errors) AddNonField(message string) {
	e.NonField = append(e.NonField, message)
}

func (e *Errors) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

func (e *Errors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.NonField) == 0)
}

// Merge appends every message of other into e.
func (e *Errors) Merge(other *Errors) {
	if other.Empty() {
		return
	}
	for field, msgs := range other.Fields {
		for _, m := range msgs {
			e.Add(field, m)
		}
	}
	e.NonField = append(e.NonField, other.NonField...)
}

// Fill adds the messages of other for fields e does not report yet.
func (e *Errors) Fill(other *Errors) {
	if other.Empty() {
		return
	}
	for field, msgs := range other.Fields {
		if e.Has(field) {
			continue
		}
		for _, m := range msgs {
			e.Add(field, m)
		}
	}
	e.NonField = append(e.NonField, other.NonField...)
}

// Err returns e as an error, or nil when nothing was collected.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields)+len(e.NonField))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], " "))
	}
	parts = append(parts, e.NonField...)
	return "validation failed: " + strings.Join(parts, "; ")
}
