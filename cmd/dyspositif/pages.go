package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxPageSpan bounds a single range such as 1-100000
const maxPageSpan = 10000

// parsePages parses a page list like "1,3,5-7" into sorted unique page
// numbers. An empty string selects every page.
func parsePages(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")

		first, err := pageNumber(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: --pages %q: %v", ErrUsage, s, err)
		}
		last := first
		if isRange {
			if last, err = pageNumber(hi); err != nil {
				return nil, fmt.Errorf("%w: --pages %q: %v", ErrUsage, s, err)
			}
		}
		if last < first || last-first > maxPageSpan {
			return nil, fmt.Errorf("%w: --pages %q: invalid range %s", ErrUsage, s, part)
		}

		for p := first; p <= last; p++ {
			seen[p] = true
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

func pageNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid page %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("page numbers start at 1, got %d", n)
	}
	return n, nil
}
