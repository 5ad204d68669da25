package via

import (
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// Param is a decoded-on-demand handle over one captured path or query
// parameter. The zero value behaves as a missing parameter.
type Param struct {
	name   string
	source string
	start  int
	end    int // -1 means to the end of source
	found  bool

	percent  bool
	unescape func(string) (string, error)
}

func unescapePath(value string) (string, error) {
	return url.PathUnescape(value)
}

func unescapeQuery(value string) (string, error) {
	return url.QueryUnescape(value)
}

func (p Param) raw() (string, bool) {
	if !p.found {
		return "", false
	}
	if p.start < 0 || p.start > len(p.source) {
		return "", true
	}
	if p.end < 0 || p.end > len(p.source) {
		return p.source[p.start:], true
	}
	return p.source[p.start:p.end], true
}

// Decode returns a handle that percent-decodes the value on access.
func (p Param) Decode() Param {
	p.percent = true
	return p
}

// Optional returns the parameter value if it was captured. A value that
// fails to decode is returned raw; use Require to observe decode errors.
func (p Param) Optional() (string, bool) {
	value, ok := p.raw()
	if !ok {
		return "", false
	}
	if p.percent {
		if decoded, err := p.unescape(value); err == nil {
			return decoded, true
		}
	}
	return value, true
}

// String returns the parameter value, or "" when missing.
func (p Param) String() string {
	value, _ := p.Optional()
	return value
}

// Require returns the parameter value or a 400 Bad Request error when the
// parameter is missing or cannot be decoded.
func (p Param) Require() (string, error) {
	value, ok := p.raw()
	if !ok {
		return "", Raisef(400, "missing required parameter %q.", p.name)
	}
	if p.percent {
		decoded, err := p.unescape(value)
		if err != nil {
			return "", Wrap(errors.WithMessagef(err, "malformed parameter %q", p.name), 400)
		}
		return decoded, nil
	}
	return value, nil
}

// Int parses the parameter value as a base-10 int. Missing values and
// parse failures map to 400 Bad Request.
func (p Param) Int() (int, error) {
	value, err := p.Require()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, Wrap(err, 400)
	}
	return n, nil
}

func (p Param) Int64() (int64, error) {
	value, err := p.Require()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, Wrap(err, 400)
	}
	return n, nil
}

func (p Param) Float64() (float64, error) {
	value, err := p.Require()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, Wrap(err, 400)
	}
	return n, nil
}

func (p Param) Bool() (bool, error) {
	value, err := p.Require()
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, Wrap(err, 400)
	}
	return b, nil
}
