// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// indexedRe matches a path segment with an explicit array index: "tags[0]".
var indexedRe = regexp.MustCompile(`^(.*)\[(\d+)\]$`)

// Driller resolves a dotted path against a raw JSON document. The backend's
// documents nest inconsistently — listings wrap records in arrays, detail
// endpoints don't — so Driller normalizes the common cases:
//
//   - "a.b.c" walks objects
//   - "a[1].b" uses an explicit array index
//   - a single-element array is drilled through transparently, so
//     "items.id" works on {"items":[{"id":..}]}
//   - a multi-element array without an index is returned whole
//
// A missing path yields a non-existent gjson.Result.
func Driller(raw string, path string) gjson.Result {
	current := gjson.Parse(raw)

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			continue
		}

		key := segment
		index := -1
		if m := indexedRe.FindStringSubmatch(segment); m != nil {
			key = m[1]
			index = mustAtoi(m[2])
		}

		// Step through single-element array wrappers before applying the key.
		current = unwrapSingle(current)

		if key != "" {
			current = current.Get(escapeKey(key))
		}
		if !current.Exists() {
			return current
		}

		if index >= 0 {
			items := current.Array()
			if index >= len(items) {
				return gjson.Result{}
			}
			current = items[index]
		}
	}

	return unwrapSingle(current)
}

// unwrapSingle collapses a one-element array to its element. Multi-element
// arrays pass through untouched.
func unwrapSingle(r gjson.Result) gjson.Result {
	if r.IsArray() {
		items := r.Array()
		if len(items) == 1 {
			return items[0]
		}
	}
	return r
}

// escapeKey protects literal dots and wildcards in a key from gjson's path
// syntax. Our segments are already dot-split, so any remaining specials are
// literal characters in the key.
func escapeKey(key string) string {
	replacer := strings.NewReplacer("*", `\*`, "?", `\?`)
	return replacer.Replace(key)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
