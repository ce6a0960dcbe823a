// Package collection processes document collections: a set of documents
// plus a persona and job description, producing a diversified ranking of
// the most relevant sections across all documents.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedInput reports a collection input missing required keys.
// It is fatal for that collection only; batch processing continues.
var ErrMalformedInput = errors.New("malformed collection input")

// Input is the canonical collection input. The wire format accepts both
// bare strings and structured objects for persona, job, and documents;
// the ambiguity is resolved here and never propagated downstream.
type Input struct {
	Persona   string
	Job       string
	Documents []string
}

// rawInput mirrors the wire format with duck-typed fields.
type rawInput struct {
	Persona   json.RawMessage `json:"persona"`
	Job       json.RawMessage `json:"job_to_be_done"`
	Documents json.RawMessage `json:"documents"`
}

// ParseInput decodes a collection input, accepting both the flat and the
// object forms of each field.
func ParseInput(data []byte) (Input, error) {
	var raw rawInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if raw.Persona == nil || raw.Job == nil || raw.Documents == nil {
		return Input{}, fmt.Errorf("%w: persona, job_to_be_done and documents are required", ErrMalformedInput)
	}

	persona, err := stringOrField(raw.Persona, "role")
	if err != nil {
		return Input{}, fmt.Errorf("%w: persona: %v", ErrMalformedInput, err)
	}
	job, err := stringOrField(raw.Job, "task")
	if err != nil {
		return Input{}, fmt.Errorf("%w: job_to_be_done: %v", ErrMalformedInput, err)
	}
	docs, err := documentList(raw.Documents)
	if err != nil {
		return Input{}, fmt.Errorf("%w: documents: %v", ErrMalformedInput, err)
	}

	return Input{Persona: persona, Job: job, Documents: docs}, nil
}

// stringOrField accepts either a bare JSON string or an object carrying
// the value under the given key.
func stringOrField(raw json.RawMessage, key string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", err
	}
	field, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("missing %q field", key)
	}
	if err := json.Unmarshal(field, &s); err != nil {
		return "", err
	}
	return s, nil
}

// documentList accepts either a list of filenames or a list of objects
// with a "filename" field.
func documentList(raw json.RawMessage) ([]string, error) {
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names, nil
	}
	var objs []struct {
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, err
	}
	names = make([]string, 0, len(objs))
	for _, o := range objs {
		if o.Filename == "" {
			return nil, fmt.Errorf("document entry missing filename")
		}
		names = append(names, o.Filename)
	}
	return names, nil
}
