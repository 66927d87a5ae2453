package spotify

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Param is a single key/value pair. Pairs keep their insertion order and
// the same key may appear more than once.
type Param struct {
	Key   string
	Value string
}

// QueryParams collects URL query parameters for an endpoint.
//
// The zero value is ready to use. Unlike url.Values, encoding preserves
// insertion order and duplicate keys.
type QueryParams struct {
	params []Param
}

// Push adds a key/value pair.
func (q *QueryParams) Push(key, value string) *QueryParams {
	q.params = append(q.params, Param{Key: key, Value: value})

	return q
}

// PushBool adds a boolean rendered as "true" or "false".
func (q *QueryParams) PushBool(key string, value bool) *QueryParams {
	return q.Push(key, strconv.FormatBool(value))
}

// PushInt adds an integer in decimal form.
func (q *QueryParams) PushInt(key string, value int) *QueryParams {
	return q.Push(key, strconv.Itoa(value))
}

// PushTime adds a timestamp in RFC 3339 form with seconds precision, UTC.
func (q *QueryParams) PushTime(key string, value time.Time) *QueryParams {
	return q.Push(key, value.UTC().Format(time.RFC3339))
}

// PushStringer adds any value with a String method.
func (q *QueryParams) PushStringer(key string, value fmt.Stringer) *QueryParams {
	return q.Push(key, value.String())
}

// PushOpt adds a pair only when value is non-nil.
func (q *QueryParams) PushOpt(key string, value *string) *QueryParams {
	if value != nil {
		q.Push(key, *value)
	}

	return q
}

// PushOptBool adds a pair only when value is non-nil.
func (q *QueryParams) PushOptBool(key string, value *bool) *QueryParams {
	if value != nil {
		q.PushBool(key, *value)
	}

	return q
}

// PushOptInt adds a pair only when value is non-nil.
func (q *QueryParams) PushOptInt(key string, value *int) *QueryParams {
	if value != nil {
		q.PushInt(key, *value)
	}

	return q
}

// Extend appends a sequence of pairs in order.
func (q *QueryParams) Extend(pairs ...Param) *QueryParams {
	q.params = append(q.params, pairs...)

	return q
}

// Pairs returns the collected pairs in insertion order.
func (q *QueryParams) Pairs() []Param {
	return q.params
}

// Len returns the number of collected pairs.
func (q *QueryParams) Len() int {
	return len(q.params)
}

// Encode renders the pairs as a query string, preserving order and
// duplicates.
func (q *QueryParams) Encode() string {
	return encodePairs(q.params)
}

// AppendToURL appends the pairs to the raw query of u, keeping whatever
// query string u already carries.
func (q *QueryParams) AppendToURL(u *url.URL) {
	if len(q.params) == 0 {
		return
	}

	encoded := q.Encode()
	if u.RawQuery == "" {
		u.RawQuery = encoded
	} else {
		u.RawQuery += "&" + encoded
	}
}

// FormParams collects form fields for a URL-encoded request body. Like
// QueryParams, insertion order and duplicate keys are preserved.
type FormParams struct {
	params []Param
}

// Push adds a key/value pair.
func (f *FormParams) Push(key, value string) *FormParams {
	f.params = append(f.params, Param{Key: key, Value: value})

	return f
}

// PushOpt adds a pair only when value is non-nil.
func (f *FormParams) PushOpt(key string, value *string) *FormParams {
	if value != nil {
		f.Push(key, *value)
	}

	return f
}

// Pairs returns the collected pairs in insertion order.
func (f *FormParams) Pairs() []Param {
	return f.params
}

// Body renders the fields as an application/x-www-form-urlencoded body.
func (f *FormParams) Body() (string, []byte) {
	return FormContentType, []byte(encodePairs(f.params))
}

func encodePairs(pairs []Param) string {
	var sb strings.Builder

	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}

	return sb.String()
}

// Content types used by request bodies.
const (
	JSONContentType = "application/json"
	FormContentType = "application/x-www-form-urlencoded"
)

// CleanJSON removes members whose value is null, an empty array, or an
// empty object from the top level of obj. Nested members are left alone.
// The input map is modified in place and returned.
func CleanJSON(obj map[string]interface{}) map[string]interface{} {
	for key, value := range obj {
		if isEmptyJSONValue(value) {
			delete(obj, key)
		}
	}

	return obj
}

func isEmptyJSONValue(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

// JSONBody marshals v into an application/json request body.
func JSONBody(v interface{}) (string, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return JSONContentType, data, nil
}
