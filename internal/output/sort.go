// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset sorts the result set in place per the provided spec. The spec
// is a comma separated list of output keys. A leading - sorts that key
// descending. A leading ! makes the comparison case-sensitive. Numeric
// values compare numerically, everything else compares as a string.
func SortDataset(dataset []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	type sortKey struct {
		key           string
		descending    bool
		caseSensitive bool
	}

	//nolint:prealloc
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)

		sk := sortKey{}
		// The modifiers can appear in either order.
		for len(field) > 0 {
			if strings.HasPrefix(field, "-") {
				sk.descending = true
				field = field[1:]
			} else if strings.HasPrefix(field, "!") {
				sk.caseSensitive = true
				field = field[1:]
			} else {
				break
			}
		}

		if field == "" {
			continue
		}
		sk.key = field
		keys = append(keys, sk)
	}

	if len(keys) == 0 {
		return
	}

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, sk := range keys {
			c := compareValues(dataset[i][sk.key], dataset[j][sk.key], sk.caseSensitive)
			if c == 0 {
				continue
			}
			if sk.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues returns -1, 0 or 1. Two numbers compare numerically. Anything
// else is rendered with InterfaceToString and compared lexically.
func compareValues(a interface{}, b interface{}, caseSensitive bool) int {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}

	return strings.Compare(as, bs)
}
