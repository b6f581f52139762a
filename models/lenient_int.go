package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// LenientInt decodes from a JSON number or a numeric string. Anything else,
// including null and absent values, decodes to 0 instead of failing.
type LenientInt int

func (n *LenientInt) UnmarshalJSON(data []byte) error {
	*n = ParseLenientInt(string(bytes.Trim(data, `"`)))
	return nil
}

// ParseLenientInt parses s as an integer, accepting decimals by truncation.
func ParseLenientInt(s string) LenientInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return LenientInt(v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return LenientInt(int(f))
}

func (n LenientInt) Int() int {
	return int(n)
}
