package cookies

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/hashicorp/go-multierror"
)

// Cookie is a name/value pair. Domain, path and expiry are not tracked.
type Cookie struct {
	Name  string
	Value string
}

// Pair returns the cookie as "name=value"
func (c Cookie) Pair() string {
	return c.Name + "=" + c.Value
}

// Jar stores at most one cookie per name in insertion order.
//
// A Jar is not safe for concurrent use.
type Jar struct {
	cookies []Cookie
}

// NewJar creates an empty jar
func NewJar() *Jar {
	return &Jar{}
}

// Add stores c, overwriting the value of an existing cookie with the same
// name in place.
func (j *Jar) Add(c Cookie) {
	for i := range j.cookies {
		if j.cookies[i].Name == c.Name {
			j.cookies[i].Value = c.Value
			return
		}
	}
	j.cookies = append(j.cookies, c)
}

// AddPair stores a cookie built from name and value
func (j *Jar) AddPair(name, value string) {
	j.Add(Cookie{Name: name, Value: value})
}

// AddAll stores each cookie in order
func (j *Jar) AddAll(cookies []Cookie) {
	for _, c := range cookies {
		j.Add(c)
	}
}

// AddSetCookie parses a single Set-Cookie value and stores its name/value.
// Attributes such as Path or Expires are discarded.
func (j *Jar) AddSetCookie(text string) error {
	c, err := parse(text)
	if err != nil {
		return failure.New(failure.Format, "cookies.add", err)
	}
	j.Add(c)
	return nil
}

// AddHeaderList parses a Cookie request header value such as
// "a=1; b=2" and stores every pair. Malformed segments are skipped and
// reported together; the well-formed ones are still added.
func (j *Jar) AddHeaderList(text string) error {
	var result *multierror.Error
	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		c, err := parse(segment)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("segment %q: %w", segment, err))
			continue
		}
		j.Add(c)
	}
	if err := result.ErrorOrNil(); err != nil {
		return failure.New(failure.Format, "cookies.adds", err)
	}
	return nil
}

// String serializes the jar as a Cookie header value,
// "name1=value1; name2=value2". An empty jar yields "".
func (j *Jar) String() string {
	if len(j.cookies) == 0 {
		return ""
	}
	pairs := make([]string, len(j.cookies))
	for i, c := range j.cookies {
		pairs[i] = c.Pair()
	}
	return strings.Join(pairs, "; ")
}

// Value returns the value of the cookie with the given name
func (j *Jar) Value(name string) (string, bool) {
	for _, c := range j.cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Pair returns "name=value" for the cookie with the given name
func (j *Jar) Pair(name string) (string, bool) {
	for _, c := range j.cookies {
		if c.Name == name {
			return c.Pair(), true
		}
	}
	return "", false
}

// Len returns the number of stored cookies
func (j *Jar) Len() int {
	return len(j.cookies)
}

// Cookies returns a copy of the stored cookies in jar order
func (j *Jar) Cookies() []Cookie {
	out := make([]Cookie, len(j.cookies))
	copy(out, j.cookies)
	return out
}

// Print writes the jar contents for debugging
func (j *Jar) Print(w io.Writer) {
	fmt.Fprintln(w, "Cookies:")
	for _, c := range j.cookies {
		fmt.Fprintf(w, "%s: %s\n", c.Name, c.Value)
	}
}

// parse reads the leading name=value of text. Values that net/http rejects,
// such as raw UTF-8, are kept as written as long as the name is present.
func parse(text string) (Cookie, error) {
	hc, err := http.ParseSetCookie(text)
	if err == nil {
		return Cookie{Name: hc.Name, Value: hc.Value}, nil
	}

	first, _, _ := strings.Cut(text, ";")
	name, value, ok := strings.Cut(first, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.ContainsAny(name, " \t\"") {
		return Cookie{}, err
	}
	return Cookie{Name: name, Value: strings.TrimSpace(value)}, nil
}
