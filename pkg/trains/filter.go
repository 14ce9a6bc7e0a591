package trains

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// OptionSet holds the train type codes a query is restricted to. The zero
// value is empty and accepts every trip.
type OptionSet struct {
	codes map[TypeCode]struct{}
}

func NewOptionSet(codes ...TypeCode) OptionSet {
	set := OptionSet{codes: map[TypeCode]struct{}{}}

	for _, code := range codes {
		if code != NoTypeCode {
			set.codes[code] = struct{}{}
		}
	}

	return set
}

// ParseOptionSet builds a set from a string of codes such as "gd".
func ParseOptionSet(codes string) OptionSet {
	var typeCodes []TypeCode
	for _, r := range strings.ToLower(codes) {
		typeCodes = append(typeCodes, TypeCode(r))
	}

	return NewOptionSet(typeCodes...)
}

func (s OptionSet) Empty() bool {
	return len(s.codes) == 0
}

func (s OptionSet) Contains(code TypeCode) bool {
	_, exists := s.codes[code]
	return exists
}

// Accepts reports whether a trip with this type code passes the filter.
func (s OptionSet) Accepts(code TypeCode) bool {
	return s.Empty() || s.Contains(code)
}

func (s OptionSet) String() string {
	codes := maps.Keys(s.codes)
	slices.Sort(codes)

	var builder strings.Builder
	for _, code := range codes {
		builder.WriteString(code.String())
	}

	return builder.String()
}

// Filter yields the trips whose type code is accepted by options, in input order.
func Filter(trips iter.Seq[Trip], options OptionSet) iter.Seq[Trip] {
	return func(yield func(Trip) bool) {
		for trip := range trips {
			if !options.Accepts(trip.TypeCode()) {
				continue
			}

			if !yield(trip) {
				return
			}
		}
	}
}
