package player

import (
	"fmt"
	"net/url"
	"strconv"
)

// Lookup returns the configured value for key and whether it was set.
type Lookup func(key string) (string, bool)

// MapLookup returns a Lookup backed by m.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// QueryLookup returns a Lookup backed by the first value of each key in q.
func QueryLookup(q url.Values) Lookup {
	return func(key string) (string, bool) {
		v, ok := q[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}
}

// Dimensions reads the target width and height from cfg. Missing or
// non-numeric values are reported as ErrConfig and negative values as
// ErrInvalidDimension.
func Dimensions(cfg Lookup) (width, height int, err error) {
	width, err = dimension(cfg, "width")
	if err != nil {
		return 0, 0, err
	}
	height, err = dimension(cfg, "height")
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func dimension(cfg Lookup, key string) (int, error) {
	s, ok := cfg(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s not set", ErrConfig, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrConfig, key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s: %d", ErrInvalidDimension, key, v)
	}
	return v, nil
}
