package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into lower-cased media ranges.
// Empty entries are skipped, a bare type becomes type/*, and a missing or
// invalid q defaults to 1.0. When q is repeated the last value wins.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if mt == "" {
			continue
		}
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok {
			subtype = "*"
		}
		mr := mediaRange{typ: strings.TrimSpace(typ), subtype: strings.TrimSpace(subtype), q: 1.0}
		for _, p := range params[1:] {
			key, val, found := strings.Cut(strings.TrimSpace(p), "=")
			if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || q < 0 || q > 1 {
				q = 1.0
			}
			mr.q = q
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// specificity ranks how closely mr matches application/<subtype>, or -1 when
// it does not match. Exact problem types outrank their base types.
func (mr mediaRange) specificity(subtype string) int {
	switch {
	case mr.typ == "*" && mr.subtype == "*":
		return 0
	case mr.typ != "application":
		return -1
	case mr.subtype == "*":
		return 1
	case strings.HasPrefix(mr.subtype, "*+"):
		suffix := mr.subtype[1:]
		if strings.HasSuffix(subtype, suffix) || "+"+subtype == suffix {
			return 2
		}
		return -1
	case mr.subtype == subtype:
		if strings.HasPrefix(subtype, "problem+") {
			return 4
		}
		return 3
	default:
		return -1
	}
}

// preference returns the q-value and specificity granted to a format by its
// most specific matching range across the given subtypes.
func preference(ranges []mediaRange, subtypes ...string) (q float64, spec int) {
	spec = -1
	for _, subtype := range subtypes {
		best := -1
		bestQ := 0.0
		for _, mr := range ranges {
			if s := mr.specificity(subtype); s > best {
				best = s
				bestQ = mr.q
			}
		}
		if best < 0 {
			continue
		}
		if bestQ > q || (bestQ == q && best > spec) {
			q = bestQ
			spec = best
		}
	}
	return q, spec
}

// selectFormat reports whether the Accept header prefers CBOR over JSON.
// Q-value ranks first and specificity breaks ties; JSON wins everything else.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborQ, cborSpec := preference(ranges, "cbor", "problem+cbor")
	jsonQ, jsonSpec := preference(ranges, "json", "problem+json")
	if cborQ <= 0 {
		return false
	}
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborSpec > jsonSpec
}
