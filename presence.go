package generable

import (
	"strconv"
	"strings"
)

// Presence is the bit flag collected by WithMeta-style decoding.
type Presence uint8

const (
	PresenceSeen       Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                         // Field value was null.
	PresenceIncomplete                      // Field value was cut off by the end of input.
)

// PresenceMap maps JSON Pointers to Presence flags. The root is "/".
type PresenceMap map[string]Presence

// Decoded carries the decoded value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

// Seen reports whether path appeared in the input.
func (pm PresenceMap) Seen(path string) bool { return pm[path]&PresenceSeen != 0 }

// WasNull reports whether path was explicitly null.
func (pm PresenceMap) WasNull(path string) bool { return pm[path]&PresenceWasNull != 0 }

// Incomplete reports whether the value at path was still being generated.
func (pm PresenceMap) Incomplete(path string) bool { return pm[path]&PresenceIncomplete != 0 }

// Filter keeps paths that start with one of include (all when empty) and none
// of exclude.
func (pm PresenceMap) Filter(include, exclude []string) PresenceMap {
	if pm == nil {
		return nil
	}
	shouldInclude := func(path string) bool {
		if len(include) > 0 {
			ok := false
			for _, p := range include {
				if strings.HasPrefix(path, p) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		for _, p := range exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}
	filtered := make(PresenceMap, len(pm))
	for k, v := range pm {
		if shouldInclude(k) {
			filtered[k] = v
		}
	}
	return filtered
}

// CollectPresence walks content and records every object property and array
// element by JSON Pointer. Root path "/" is always marked seen.
func CollectPresence(c GeneratedContent) PresenceMap {
	pm := make(PresenceMap)
	pm["/"] = presenceOf(c)
	collectPresenceRecurse(c, "", pm)
	return pm
}

func presenceOf(c GeneratedContent) Presence {
	p := PresenceSeen
	if c.IsNull() {
		p |= PresenceWasNull
	}
	if !c.IsComplete() {
		p |= PresenceIncomplete
	}
	return p
}

func collectPresenceRecurse(c GeneratedContent, cur string, pm PresenceMap) {
	switch c.Kind() {
	case KindObject:
		for k, val := range c.All() {
			p := cur + "/" + escapePointer(k)
			pm[p] |= presenceOf(val)
			collectPresenceRecurse(val, p, pm)
		}
	case KindArray:
		for i, val := range c.Elements() {
			p := cur + "/" + strconv.Itoa(i)
			pm[p] |= presenceOf(val)
			collectPresenceRecurse(val, p, pm)
		}
	}
}
