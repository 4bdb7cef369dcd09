// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package differ

import (
	"encoding/json"
	"fmt"

	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two JSON documents and renders the changes between them.
// The documents must be JSON objects. An empty string and changed=false are
// returned when the two documents are equivalent.
func Diff(left []byte, right []byte, color bool) (out string, changed bool, err error) {
	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare documents: %w", err)
	}

	if !d.Modified() {
		return "", false, nil
	}

	// The ascii formatter walks the left document and annotates it with the
	// deltas, so it needs the unmarshalled form.
	var leftDoc map[string]interface{}
	if err := json.Unmarshal(left, &leftDoc); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	f := formatter.NewAsciiFormatter(leftDoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})

	out, err = f.Format(d)
	if err != nil {
		return "", false, fmt.Errorf("failed to format diff: %w", err)
	}

	return out, true, nil
}

// DiffDeltas renders the changes between two JSON objects in the compact
// delta form, suitable for piping into other tooling.
func DiffDeltas(left []byte, right []byte) (string, bool, error) {
	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare documents: %w", err)
	}

	if !d.Modified() {
		return "", false, nil
	}

	out, err := formatter.NewDeltaFormatter().Format(d)
	if err != nil {
		return "", false, fmt.Errorf("failed to format diff: %w", err)
	}

	return out, true, nil
}
