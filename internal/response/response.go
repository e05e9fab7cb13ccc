package response

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/requests/internal/shared/failure"
	"github.com/bytedance/sonic"
	"github.com/itchyny/gojq"
	"github.com/saintfish/chardet"
	"github.com/spf13/afero"
	"golang.org/x/net/html/charset"
)

// Header is one flattened response header row
type Header struct {
	Name  string
	Value string
}

// Response is a completed exchange with its body buffered.
//
// The body is read once when the Response is built; every accessor works on
// the cached bytes.
type Response struct {
	status int
	header http.Header
	body   []byte

	jsonOnce sync.Once
	jsonVal  map[string]interface{}
	jsonErr  error
}

// New wraps an exchange whose body has already been read into body.
// raw may be nil, in which case StatusCode reports -1.
func New(raw *http.Response, body []byte) *Response {
	r := &Response{
		status: -1,
		header: http.Header{},
		body:   body,
	}
	if r.body == nil {
		r.body = []byte{}
	}
	if raw != nil {
		if raw.StatusCode > 0 {
			r.status = raw.StatusCode
		}
		if raw.Header != nil {
			r.header = raw.Header
		}
	}
	return r
}

// Bytes returns the buffered body
func (r *Response) Bytes() []byte {
	return r.body
}

// Text decodes the body as UTF-8
func (r *Response) Text() string {
	return string(r.body)
}

// TextAs decodes the body with the named encoding, e.g. "gbk" or "iso-8859-1"
func (r *Response) TextAs(encoding string) (string, error) {
	enc, _ := charset.Lookup(encoding)
	if enc == nil {
		return "", failure.Newf(failure.Format, "response.text", "unsupported encoding %q", encoding)
	}
	out, err := enc.NewDecoder().Bytes(r.body)
	if err != nil {
		return "", failure.Wrapf(failure.Format, "response.text", err, "decode as %s", encoding)
	}
	return string(out), nil
}

// Charset returns the body charset from the Content-Type header, falling
// back to content detection, then to utf-8. A detected charset with no
// known decoder also yields utf-8.
func (r *Response) Charset() string {
	if ct := r.header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			if cs := params["charset"]; cs != "" {
				return strings.ToLower(cs)
			}
		}
	}
	if len(r.body) == 0 {
		return "utf-8"
	}
	result, err := chardet.NewTextDetector().DetectBest(r.body)
	if err != nil || result == nil {
		return "utf-8"
	}
	detected := strings.ToLower(result.Charset)
	if enc, _ := charset.Lookup(detected); enc == nil {
		return "utf-8"
	}
	return detected
}

// DecodedText decodes the body using Charset
func (r *Response) DecodedText() (string, error) {
	return r.TextAs(r.Charset())
}

// JSON parses the text between the first '{' and the last '}' as one JSON
// object. The result is computed once and cached.
func (r *Response) JSON() (map[string]interface{}, error) {
	r.jsonOnce.Do(func() {
		r.jsonVal, r.jsonErr = parseObject(r.Text())
	})
	return r.jsonVal, r.jsonErr
}

// JSONValue returns the value at key as a string. Strings are returned
// as-is; other values are returned as JSON text.
func (r *Response) JSONValue(key string) (string, bool, error) {
	obj, err := r.JSON()
	if err != nil {
		return "", false, err
	}
	v, ok := obj[key]
	if !ok || v == nil {
		return "", false, nil
	}
	if s, ok := v.(string); ok {
		return s, true, nil
	}
	s, err := sonic.MarshalString(v)
	if err != nil {
		return "", false, failure.New(failure.Format, "response.json", err)
	}
	return s, true, nil
}

// Query runs a jq expression against the JSON view and returns every result
func (r *Response) Query(expr string) ([]interface{}, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, failure.Wrapf(failure.Format, "response.query", err, "parse %q", expr)
	}
	obj, err := r.JSON()
	if err != nil {
		return nil, err
	}

	var results []interface{}
	iter := query.Run(obj)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				break
			}
			return nil, failure.Wrapf(failure.Format, "response.query", err, "run %q", expr)
		}
		results = append(results, v)
	}
	return results, nil
}

// Headers flattens the header map into one row per value, sorted by name
func (r *Response) Headers() []Header {
	names := make([]string, 0, len(r.header))
	for name := range r.header {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []Header
	for _, name := range names {
		for _, v := range r.header[name] {
			rows = append(rows, Header{Name: name, Value: v})
		}
	}
	return rows
}

// Header returns the first value for name
func (r *Response) Header(name string) (string, bool) {
	values := r.header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// HeaderValues returns every value for name
func (r *Response) HeaderValues(name string) []string {
	return r.header.Values(name)
}

// StatusCode returns the HTTP status, or -1 when it is unknown
func (r *Response) StatusCode() int {
	return r.status
}

// WriteToFile writes the body to path on the local filesystem
func (r *Response) WriteToFile(path string) error {
	return r.SaveTo(afero.NewOsFs(), path)
}

// SaveTo writes the body to path on fs, replacing any existing content
func (r *Response) SaveTo(fs afero.Fs, path string) error {
	if err := afero.WriteFile(fs, path, r.body, 0o644); err != nil {
		return fmt.Errorf("write response body to %s: %w", path, err)
	}
	return nil
}

// PrintHeaders writes the flattened headers for debugging
func (r *Response) PrintHeaders(w io.Writer) {
	fmt.Fprintln(w, "Response Headers:")
	for _, h := range r.Headers() {
		fmt.Fprintf(w, "%s: %s\n", h.Name, h.Value)
	}
}

// PrintText writes the body text for debugging
func (r *Response) PrintText(w io.Writer) {
	fmt.Fprintln(w, r.Text())
}

// parseObject extracts and decodes the outermost {...} span of text
func parseObject(text string) (map[string]interface{}, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, failure.Newf(failure.Format, "response.json", "no JSON object in body")
	}

	var obj map[string]interface{}
	if err := sonic.UnmarshalString(text[start:end+1], &obj); err != nil {
		return nil, failure.Wrapf(failure.Format, "response.json", err, "invalid JSON")
	}
	return obj, nil
}
