package rowstream

import "slices"

// DefaultFiller substitutes default values into empty cells of a line.
// When nothing is substituted it returns the line it was given, not a
// copy; callers must not rely on that identity, only on the contents.
type DefaultFiller func(line []string) []string

// NewDefaultFiller builds a filler keyed by header name. A cell is
// filled only when it is empty and a non-empty default exists for the
// header at the same position. Positions beyond len(headers) are left
// untouched.
func NewDefaultFiller(headers []string, defaults map[string]string) DefaultFiller {
	if len(defaults) == 0 {
		return identityFiller
	}

	return func(line []string) []string {
		var changed []string
		for i := range line {
			if line[i] != "" || i >= len(headers) {
				continue
			}
			value, ok := defaults[headers[i]]
			if !ok || value == "" {
				continue
			}
			if changed == nil {
				changed = slices.Clone(line)
			}
			changed[i] = value
		}
		if changed == nil {
			return line
		}
		return changed
	}
}

// NewPositionalFiller builds a filler from a parallel slice of defaults,
// the CSV variant where defaults are positional rather than named. The
// caller is responsible for checking the arity against its headers.
func NewPositionalFiller(defaults []string) DefaultFiller {
	if len(defaults) == 0 {
		return identityFiller
	}

	return func(line []string) []string {
		var changed []string
		for i := range line {
			if line[i] != "" || i >= len(defaults) || defaults[i] == "" {
				continue
			}
			if changed == nil {
				changed = slices.Clone(line)
			}
			changed[i] = defaults[i]
		}
		if changed == nil {
			return line
		}
		return changed
	}
}

func identityFiller(line []string) []string {
	return line
}
