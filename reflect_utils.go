package generable

import (
	"reflect"
	"strings"
)

// ResolveStructKey resolves the property name a struct field binds to.
// Priority: generable:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("generable"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
			if p == "-" {
				return "-"
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// StructKeyDescription returns the desc=... part of a generable tag, if any.
// desc= must be the last option since the text may contain commas.
func StructKeyDescription(sf reflect.StructField) string {
	gt := sf.Tag.Get("generable")
	if i := strings.Index(gt, "desc="); i >= 0 {
		return gt[i+len("desc="):]
	}
	return ""
}
