package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"
	"time"
)

// FlexInt accepts 12 as well as "12".
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = unquote(b)
	if len(b) == 0 {
		return errors.New("empty number")
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid integer %q", string(b))
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("integer %q out of range", string(b))
	}
	*n = FlexInt(int(f))
	return nil
}

func (n *FlexInt) Int() int {
	if n == nil {
		return 0
	}
	return int(*n)
}

// FlexFloat accepts 19.99 as well as "19.99".
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = unquote(b)
	if len(b) == 0 {
		return errors.New("empty number")
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", string(b))
	}
	*f = FlexFloat(v)
	return nil
}

func (f *FlexFloat) Float64Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// FlexTime accepts RFC 3339 timestamps as well as plain "2006-01-02" dates,
// which is what date inputs post.
type FlexTime time.Time

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	b = unquote(b)
	if len(b) == 0 || string(b) == "null" {
		return errors.New("empty date")
	}
	s := string(b)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if v, err := time.Parse(layout, s); err == nil {
			*t = FlexTime(v)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (t *FlexTime) Time() time.Time {
	if t == nil {
		return time.Time{}
	}
	return time.Time(*t)
}

// StringList accepts a JSON array or a comma separated string. Entries are
// trimmed and blanks dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = clean(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected a list or a comma separated string")
	}
	*l = SplitList(s)
	return nil
}

// OrEmpty never returns nil so the column stores [] rather than null.
func (l StringList) OrEmpty() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

func SplitList(s string) StringList {
	return clean(strings.Split(s, ","))
}

func clean(in []string) StringList {
	out := StringList{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func unquote(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = bytes.TrimSpace(b[1 : len(b)-1])
	}
	return b
}

// NormalizeImagePath turns whatever the client sent (absolute path, Windows
// path, bare filename) into "uploads/inventory/<file>".
func NormalizeImagePath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	if p == "" {
		return "", errors.New("Image is required")
	}
	if i := strings.Index(p, "uploads/inventory/"); i >= 0 && len(p) > i+len("uploads/inventory/") {
		return p[i:], nil
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return "", fmt.Errorf("invalid image path %q", p)
	}
	return path.Join("uploads", "inventory", base), nil
}
