package authz

import "sort"

// PermissionSet is an unordered set of permission codes. A nil set is empty.
type PermissionSet map[string]bool

func NewPermissionSet(codes ...string) PermissionSet {
	set := make(PermissionSet, len(codes))
	for _, code := range codes {
		if code != "" {
			set[code] = true
		}
	}
	return set
}

func (s PermissionSet) Has(code string) bool {
	return s[code]
}

// HasAny is false for an empty argument list.
func (s PermissionSet) HasAny(codes ...string) bool {
	for _, code := range codes {
		if s[code] {
			return true
		}
	}
	return false
}

// HasAll is true for an empty argument list.
func (s PermissionSet) HasAll(codes ...string) bool {
	for _, code := range codes {
		if !s[code] {
			return false
		}
	}
	return true
}

// Codes returns the codes in sorted order.
func (s PermissionSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (s PermissionSet) Len() int { return len(s) }
