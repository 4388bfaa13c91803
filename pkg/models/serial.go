package models

import "strconv"

// ParseSerial extracts the first run of ASCII digits from s.
//
// It reports false for serials without digits and for digit runs that do not
// fit an int64; callers treat those as +infinity. Parsing the decimal form of
// a parsed value returns the same value.
func ParseSerial(s string) (int64, bool) {
	start := -1
	end := len(s)
	for i := 0; i < len(s); i++ {
		isDigit := s[i] >= '0' && s[i] <= '9'
		if start < 0 {
			if isDigit {
				start = i
			}
			continue
		}
		if !isDigit {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
