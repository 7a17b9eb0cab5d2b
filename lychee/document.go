// Package lychee models the JSON log written by the lychee link checker and
// loads it from disk.
package lychee

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status describes why lychee reported a link as failed.
type Status struct {
	Text    string `json:"text"`              // Human-readable status, e.g. "Not Found" or "Timeout"
	Code    int    `json:"code,omitempty"`    // HTTP status code (0 if lychee had none)
	Details string `json:"details,omitempty"` // Extra error detail, if any
}

// FailureEntry is a single failed link check.
type FailureEntry struct {
	URL    string `json:"url"`
	Status Status `json:"status"`
}

// UnmarshalJSON decodes an entry and rejects one without a status object or
// without status text.
func (e *FailureEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL    string `json:"url"`
		Status *struct {
			Text    *string `json:"text"`
			Code    int     `json:"code"`
			Details string  `json:"details"`
		} `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Status == nil:
		return fmt.Errorf("entry for %q has no status", raw.URL)
	case raw.Status.Text == nil:
		return fmt.Errorf("entry for %q has no status text", raw.URL)
	}

	*e = FailureEntry{
		URL: raw.URL,
		Status: Status{
			Text:    *raw.Status.Text,
			Code:    raw.Status.Code,
			Details: raw.Status.Details,
		},
	}
	return nil
}

// Suggestion is a replacement URL proposed for a failed link.
type Suggestion struct {
	Original   string `json:"original"`
	Suggestion string `json:"suggestion"`
}

// Group holds the items reported for one source file.
type Group[T any] struct {
	File  string
	Items []T
}

// FileMap is a JSON object keyed by source file, kept in document order.
// A nil FileMap means the key was missing or null.
type FileMap[T any] []Group[T]

// UnmarshalJSON reads the object key by key so file order survives decoding.
func (m *FileMap[T]) UnmarshalJSON(data []byte) error {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		*m = nil
		return nil
	}

	groups := FileMap[T]{}
	iter.ReadObjectCB(func(it *jsoniter.Iterator, file string) bool {
		var items []T
		it.ReadVal(&items)
		groups = append(groups, Group[T]{File: file, Items: items})
		return it.Error == nil
	})
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return fmt.Errorf("decode file map: %w", iter.Error)
	}

	*m = groups
	return nil
}

// Len returns the total number of items across all files.
func (m FileMap[T]) Len() int {
	n := 0
	for _, g := range m {
		n += len(g.Items)
	}
	return n
}

// Document is the subset of the lychee JSON log this tool reads.
type Document struct {
	FailMap       FileMap[FailureEntry] `json:"fail_map"`
	SuggestionMap FileMap[Suggestion]   `json:"suggestion_map"`
}

// Decode parses a lychee JSON log and checks the fields the classifier relies on.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLog, err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if d.FailMap == nil {
		return fmt.Errorf("%w: missing fail_map", ErrMalformedLog)
	}
	for _, group := range d.FailMap {
		for i, entry := range group.Items {
			if entry.URL == "" {
				return fmt.Errorf("%w: entry %d for %q has no url", ErrMalformedLog, i, group.File)
			}
		}
	}
	return nil
}
