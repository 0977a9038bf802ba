package state

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/filesync/internal/profile"
)

// Key names of the flat key/value file.
const (
	KeyInterval = "interval"

	// Legacy single-profile keys, read as profile 1.
	KeyLegacySource = "source"
	KeyLegacyDest   = "dest"

	keySourcePrefix = "source"
	keyDestPrefix   = "dest"
)

type field int

const (
	fieldSource field = iota
	fieldDest
)

// binding is where a key's value lands in the canonical state.
type binding struct {
	index int // 0-based profile index
	field field
}

// keyStrategy resolves one family of key names.
type keyStrategy interface {
	resolve(key string) (binding, bool)
}

// indexedKeys resolves source1..sourceN and dest1..destN through the key table.
type indexedKeys struct {
	table map[string]binding
}

func newIndexedKeys() indexedKeys {
	table := make(map[string]binding, 2*profile.MaxProfiles)
	for i := 0; i < profile.MaxProfiles; i++ {
		table[SourceKey(i+1)] = binding{index: i, field: fieldSource}
		table[DestKey(i+1)] = binding{index: i, field: fieldDest}
	}
	return indexedKeys{table: table}
}

func (k indexedKeys) resolve(key string) (binding, bool) {
	b, ok := k.table[key]
	return b, ok
}

// legacyKeys resolves the original two-key format onto profile 1.
type legacyKeys struct{}

func (legacyKeys) resolve(key string) (binding, bool) {
	switch key {
	case KeyLegacySource:
		return binding{index: 0, field: fieldSource}, true
	case KeyLegacyDest:
		return binding{index: 0, field: fieldDest}, true
	}
	return binding{}, false
}

// strategies are tried in order; the first match wins.
var strategies = []keyStrategy{newIndexedKeys(), legacyKeys{}}

func resolveKey(key string) (binding, bool) {
	for _, s := range strategies {
		if b, ok := s.resolve(key); ok {
			return b, true
		}
	}
	return binding{}, false
}

// SourceKey returns the key written for the source of the 1-based profile id.
func SourceKey(id int) string { return keySourcePrefix + strconv.Itoa(id) }

// DestKey returns the key written for each destination of the 1-based profile id.
func DestKey(id int) string { return keyDestPrefix + strconv.Itoa(id) }

// splitLine splits "key,value" on the first comma and trims both sides.
func splitLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ",")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
