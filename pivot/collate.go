// Copyright (c) 2025 Kawal Suara contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pivot

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compare orders two column keys: negative when a sorts first, zero when equal.
type Compare func(a, b string) int

// Lexical compares by byte order.
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// NewCollator returns a locale-aware Compare for the given BCP 47 tag, e.g.
// "id". Unknown tags fall back to the root collation.
func NewCollator(tag string) Compare {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Und
	}

	// collate.Collator keeps scratch buffers and is not safe for concurrent use
	var mu sync.Mutex
	c := collate.New(t, collate.Numeric, collate.IgnoreCase)
	return func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(a, b)
	}
}
