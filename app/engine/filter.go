package engine

import (
	models "school-dashboard/app/models/dashboard"
)

// Selection is an insertion-ordered set of chosen values for one field.
// A nil or empty Selection means the field is not filtered.
type Selection struct {
	order []string
	index map[string]struct{}
}

func NewSelection(values ...string) *Selection {
	s := &Selection{index: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.add(v)
	}
	return s
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *Selection) Has(value string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[value]
	return ok
}

// Values returns a copy of the selected values in the order they were added.
func (s *Selection) Values() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Toggle adds value when missing and removes it otherwise.
func (s *Selection) Toggle(value string) {
	if s.Has(value) {
		s.remove(value)
		return
	}
	s.add(value)
}

func (s *Selection) add(value string) {
	if _, ok := s.index[value]; ok {
		return
	}
	s.index[value] = struct{}{}
	s.order = append(s.order, value)
}

func (s *Selection) remove(value string) {
	delete(s.index, value)
	for i, v := range s.order {
		if v == value {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Passes reports whether r survives every non-empty selection. A field
// test passes when the record's value is selected, or when the value is
// empty and the N/A marker is selected.
func Passes(r models.Record, selections map[string]*Selection) bool {
	for field, sel := range selections {
		if sel.Len() == 0 {
			continue
		}
		v := r.Value(field)
		if v == "" {
			if !sel.Has(NAMarker) {
				return false
			}
			continue
		}
		if !sel.Has(v) {
			return false
		}
	}
	return true
}

// FilterSet holds the facet selections of one dataset.
type FilterSet struct {
	selections map[string]*Selection
}

func NewFilterSet() *FilterSet {
	return &FilterSet{selections: make(map[string]*Selection)}
}

// Set replaces the selection of field.
func (f *FilterSet) Set(field string, values ...string) {
	f.selections[field] = NewSelection(values...)
}

// Selection returns the current selection of field, nil when unset.
func (f *FilterSet) Selection(field string) *Selection {
	return f.selections[field]
}

func (f *FilterSet) Toggle(field, value string) {
	sel, ok := f.selections[field]
	if !ok {
		sel = NewSelection()
		f.selections[field] = sel
	}
	sel.Toggle(value)
}

func (f *FilterSet) SelectOnly(field, value string) {
	f.Set(field, value)
}

func (f *FilterSet) Passes(r models.Record) bool {
	return Passes(r, f.selections)
}

// Apply returns the records that pass, in input order.
func (f *FilterSet) Apply(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if f.Passes(r) {
			out = append(out, r)
		}
	}
	return out
}
