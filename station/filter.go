package station

import "strings"

// Predicate is one independent filter over a station. Filters compose by
// explicit conjunction in Filter.
type Predicate func(Station) bool

// Filter returns the stations matching every predicate.
func Filter(stations []Station, predicates ...Predicate) []Station {
	matched := make([]Station, 0, len(stations))
	for _, s := range stations {
		ok := true
		for _, p := range predicates {
			if !p(s) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, s)
		}
	}
	return matched
}

// MatchText matches the query against name, address, town and operator,
// case-insensitive. An empty query matches everything.
func MatchText(query string) Predicate {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(s Station) bool {
		if query == "" {
			return true
		}
		hay := strings.ToLower(strings.Join([]string{s.Name, s.Address, s.Town, s.Operator}, " "))
		return strings.Contains(hay, query)
	}
}

// MatchConnectors passes if any requested connector name appears in any
// connector type title. Names are matched as substrings, so "ccs" matches
// "CCS (Type 2)".
func MatchConnectors(names []string) Predicate {
	wanted := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			wanted = append(wanted, n)
		}
	}
	return func(s Station) bool {
		if len(wanted) == 0 {
			return true
		}
		for _, c := range s.Connectors {
			title := strings.ToLower(c.Type)
			for _, w := range wanted {
				if strings.Contains(title, w) {
					return true
				}
			}
		}
		return false
	}
}

// MatchPower passes if any connector with a known power rating falls inside
// the requested band. A station whose connectors all have unknown power fails
// only when a band is actually requested.
func MatchPower(minKW, maxKW *float64) Predicate {
	return func(s Station) bool {
		if minKW == nil && maxKW == nil {
			return true
		}
		for _, c := range s.Connectors {
			if c.PowerKW == nil {
				continue
			}
			p := *c.PowerKW
			if minKW != nil && p < *minKW {
				continue
			}
			if maxKW != nil && p > *maxKW {
				continue
			}
			return true
		}
		return false
	}
}

// MatchStatus matches the requested status as a case-insensitive substring of
// the station status. An empty request matches everything.
func MatchStatus(status string) Predicate {
	status = strings.ToLower(strings.TrimSpace(status))
	return func(s Station) bool {
		if status == "" {
			return true
		}
		return strings.Contains(strings.ToLower(s.Status), status)
	}
}
