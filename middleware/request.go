// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxBodyBytes = 1 << 20

var ErrInvalidBody = errors.New("invalid request body")

// RequestData holds request body fields as trimmed strings, whatever the
// body encoding was.
type RequestData map[string]string

// ParseRequestData reads the body as JSON, multipart/form-data or
// application/x-www-form-urlencoded depending on Content-Type. JSON numbers
// and booleans are kept in their text form; nested values are ignored.
// An empty body yields empty data.
func ParseRequestData(w http.ResponseWriter, r *http.Request) (RequestData, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	data := RequestData{}

	switch {
	case strings.Contains(contentType, "application/json"):
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return data, nil
			}
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				data[k] = strings.TrimSpace(val)
			case json.Number:
				data[k] = val.String()
			case bool:
				data[k] = strconv.FormatBool(val)
			}
		}
	case strings.Contains(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		data.fill(r)
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		data.fill(r)
	}

	return data, nil
}

func (d RequestData) fill(r *http.Request) {
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			d[k] = strings.TrimSpace(vs[0])
		}
	}
}

// String returns the field, or "" when absent
func (d RequestData) String(key string) string {
	return d[key]
}

// Optional returns nil for an absent or empty field
func (d RequestData) Optional(key string) *string {
	v, ok := d[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// Int64 returns the field as an integer, or 0 when absent or not numeric
func (d RequestData) Int64(key string) int64 {
	v := d[key]
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// JSON numbers such as 3.0
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0
		}
		return int64(f)
	}
	return n
}

// timeLayouts are tried in order; layouts without a zone are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time parses an optional timestamp field. Absent or empty gives nil.
func (d RequestData) Time(key string) (*time.Time, error) {
	v := d[key]
	if v == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: unrecognized time %q", key, v)
}

// QueryInt64 reads an integer query parameter, 0 when absent or invalid
func QueryInt64(r *http.Request, key string) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// PathInt64 reads an integer path value, 0 when absent or invalid
func PathInt64(r *http.Request, key string) int64 {
	n, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
