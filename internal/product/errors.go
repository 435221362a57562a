package product

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind classifies an API failure by cause.
type ErrorKind int

const (
	// KindUnknown is the catch-all for failures with no better classification.
	KindUnknown ErrorKind = iota
	// KindConnectivity covers transport failures: the request never produced
	// an HTTP status (connection refused, DNS failure, timeout).
	KindConnectivity
	// KindMalformed covers responses that arrived but could not be decoded.
	KindMalformed
	// KindValidation covers 400 rejections, optionally with per-field detail.
	KindValidation
	// KindNotFound covers 404 responses.
	KindNotFound
	// KindServerFault covers 5xx responses.
	KindServerFault
)

// APIError is a classified failure from the catalog API.
type APIError struct {
	Kind    ErrorKind
	Message string
	// Fields carries per-field validation detail when the server provided
	// any, keyed by field name. Only set for KindValidation.
	Fields map[string]string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage returns the message to surface to the user, including any
// field-level validation detail.
func (e *APIError) UserMessage() string {
	if e.Kind != KindValidation || len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func connectivityError(baseURL string, err error) *APIError {
	return &APIError{
		Kind:    KindConnectivity,
		Message: fmt.Sprintf("cannot reach the catalog API at %s; check that the backend is running", baseURL),
		Err:     err,
	}
}

func malformedError(err error) *APIError {
	return &APIError{
		Kind:    KindMalformed,
		Message: "the catalog API returned a response that could not be decoded",
		Err:     err,
	}
}

// validationBody is the shape a 400 rejection may carry. The errors entries
// are either bare strings or {property, constraints} objects.
type validationBody struct {
	Message string            `json:"message"`
	Errors  []json.RawMessage `json:"errors"`
}

// classifyStatus turns a non-2xx response into an APIError. The body is
// consulted only for 400 responses, where validation detail may live.
func classifyStatus(status int, body []byte) *APIError {
	switch {
	case status == http.StatusBadRequest:
		return classifyValidation(body)
	case status == http.StatusNotFound:
		msg := "the requested record was not found"
		var vb validationBody
		if err := json.Unmarshal(body, &vb); err == nil && strings.TrimSpace(vb.Message) != "" {
			msg = vb.Message
		}
		return &APIError{Kind: KindNotFound, Message: msg}
	case status >= http.StatusInternalServerError:
		return &APIError{
			Kind:    KindServerFault,
			Message: "the catalog API reported an internal error; try again later",
		}
	default:
		return &APIError{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("the catalog API returned an unexpected status %d", status),
		}
	}
}

func classifyValidation(body []byte) *APIError {
	out := &APIError{
		Kind:    KindValidation,
		Message: "the request was rejected; check the entered values",
	}

	var vb validationBody
	if err := json.Unmarshal(body, &vb); err != nil {
		return out
	}
	if strings.TrimSpace(vb.Message) != "" {
		out.Message = vb.Message
	}

	for _, raw := range vb.Errors {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if out.Fields == nil {
				out.Fields = map[string]string{}
			}
			out.Fields[s] = "invalid"
			continue
		}
		var field struct {
			Property    string            `json:"property"`
			Constraints map[string]string `json:"constraints"`
		}
		if err := json.Unmarshal(raw, &field); err != nil || field.Property == "" {
			continue
		}
		msgs := make([]string, 0, len(field.Constraints))
		for _, key := range sortedKeys(field.Constraints) {
			msgs = append(msgs, field.Constraints[key])
		}
		if out.Fields == nil {
			out.Fields = map[string]string{}
		}
		out.Fields[field.Property] = strings.Join(msgs, ", ")
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
