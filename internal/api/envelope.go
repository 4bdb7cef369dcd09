// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Envelope is the uniform shape every backend call resolves to. Exactly one
// of Data or Err is meaningful, keyed off Success.
type Envelope struct {
	Success bool
	Data    json.RawMessage
	Err     *CallError
}

// CallError carries the failure branch of an Envelope. Status is zero for
// transport-shaped failures surfaced by the backend itself. It satisfies
// error so typed wrappers can promote it directly.
type CallError struct {
	Status  int
	Message string
	Details json.RawMessage
}

func (e *CallError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsPermission reports a 403. Callers flag these for distinct UX copy.
func (e *CallError) IsPermission() bool { return e.Status == http.StatusForbidden }

// IsNotFound reports a 404.
func (e *CallError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// decodeEnvelope folds a raw response into the Envelope shape. The backend
// is loose about its response bodies, so this leans on gjson rather than
// struct tags: a body may be {"success":..,"data":..}, a bare document, or
// one of several error shapes.
func decodeEnvelope(status int, doc []byte) *Envelope {
	if status >= 400 {
		return &Envelope{
			Success: false,
			Err: &CallError{
				Status:  status,
				Message: FlattenErrorMessage(doc, status),
				Details: json.RawMessage(doc),
			},
		}
	}

	parsed := gjson.ParseBytes(doc)

	// Explicit envelope from the backend.
	if s := parsed.Get("success"); s.Exists() {
		if !s.Bool() {
			return &Envelope{
				Success: false,
				Err: &CallError{
					Message: FlattenErrorMessage(doc, status),
					Details: json.RawMessage(doc),
				},
			}
		}
		if data := parsed.Get("data"); data.Exists() {
			return &Envelope{Success: true, Data: json.RawMessage(data.Raw)}
		}
		return &Envelope{Success: true, Data: json.RawMessage(doc)}
	}

	// Bare document. Treat the whole body as data.
	return &Envelope{Success: true, Data: json.RawMessage(doc)}
}

// FlattenErrorMessage unwraps the backend's nested validation-error
// arrays/objects into a single human-readable string. 422-style bodies carry
// either {"detail":[{"loc":..,"msg":..},..]}, {"errors":{field:[msg,..]}},
// or a plain {"message"|"detail"|"error": "..."}.
func FlattenErrorMessage(doc []byte, status int) string {
	parsed := gjson.ParseBytes(doc)

	if detail := parsed.Get("detail"); detail.Exists() {
		if detail.IsArray() {
			var parts []string
			detail.ForEach(func(_, item gjson.Result) bool {
				field := lastSegment(item.Get("loc"))
				msg := item.Get("msg").String()
				if msg == "" {
					msg = item.String()
				}
				if field != "" {
					parts = append(parts, field+": "+msg)
				} else {
					parts = append(parts, msg)
				}
				return true
			})
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		} else if detail.String() != "" {
			return detail.String()
		}
	}

	if errs := parsed.Get("errors"); errs.Exists() && errs.IsObject() {
		var parts []string
		errs.ForEach(func(field, msgs gjson.Result) bool {
			if msgs.IsArray() {
				msgs.ForEach(func(_, m gjson.Result) bool {
					parts = append(parts, field.String()+": "+m.String())
					return true
				})
			} else {
				parts = append(parts, field.String()+": "+msgs.String())
			}
			return true
		})
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	for _, key := range []string{"message", "error", "msg"} {
		if v := parsed.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}

	if status > 0 {
		return http.StatusText(status)
	}
	return "request failed"
}

// lastSegment returns the final element of a validation "loc" array, which
// names the offending field ("body","email" -> "email").
func lastSegment(loc gjson.Result) string {
	if !loc.IsArray() {
		return loc.String()
	}
	segments := loc.Array()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1].String()
}
