package usecase

import "strings"

// AllowList is a fixed set of accepted model names. It is never mutated after
// construction and is safe for concurrent use.
type AllowList struct {
	names map[string]struct{}
}

func NewAllowList(names ...string) AllowList {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return AllowList{names: set}
}

func (a AllowList) Contains(name string) bool {
	_, ok := a.names[name]
	return ok
}

func (a AllowList) Len() int {
	return len(a.names)
}
