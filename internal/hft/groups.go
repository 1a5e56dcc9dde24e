package hft

import "reflect"

// resolveGroups builds a fully-inherited copy of h: for every field left at
// its Go zero value, resolveGroups overlays the value from h's referenced
// groups, in the order h.Groups lists them (spec.md §6: "inherit from
// groups when not set on the HFT itself"). A later group in the list wins
// over an earlier one; the HFT's own non-zero fields always win over any
// group.
func resolveGroups(h *HFT, groups map[string]HFT) (*HFT, error) {
	resolved := *h
	for _, name := range h.Groups {
		g, ok := groups[name]
		if !ok {
			return nil, &ConfigError{HFT: h.Name, Key: "groups", Value: name, Reason: "unknown group"}
		}
		fillZero(reflect.ValueOf(&resolved).Elem(), reflect.ValueOf(g))
	}
	return &resolved, nil
}

// fillZero recursively overlays src's fields onto dst wherever dst's field
// is the zero value. Both must be addressable struct values of the same
// type. Slice/map fields are overlaid wholesale (not merged element-wise)
// since group-level lists (e.g. expenditure components) are meant to be
// replaced outright, not unioned.
func fillZero(dst, src reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		dstField := dst.Field(i)
		srcField := src.Field(i)

		switch dstField.Kind() {
		case reflect.Struct:
			fillZero(dstField, srcField)
		default:
			if dstField.IsZero() && !srcField.IsZero() {
				dstField.Set(srcField)
			}
		}
	}
}
