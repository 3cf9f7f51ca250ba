package docjson

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotDocument is returned when the parsed text is valid JSON but not an object.
var ErrNotDocument = errors.New("not a document")

// ParseDocument parses an Extended JSON object into a document.
// Empty or blank text yields an empty document, which matches everything when used as a query.
func ParseDocument(text string) (bson.M, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return bson.M{}, nil
	}
	if !strings.HasPrefix(text, "{") {
		return nil, fmt.Errorf("parse %q: %w", abbreviate(text), ErrNotDocument)
	}

	document := bson.M{}
	if err := bson.UnmarshalExtJSON([]byte(text), false, &document); err != nil {
		return nil, fmt.Errorf("parse %q: %w", abbreviate(text), err)
	}

	return document, nil
}

// Format renders a document as relaxed Extended JSON on a single line.
func Format(document bson.M) (string, error) {
	if document == nil {
		document = bson.M{}
	}
	marshaled, err := bson.MarshalExtJSON(document, false, false)
	if err != nil {
		return "", fmt.Errorf("format document: %w", err)
	}

	return string(marshaled), nil
}

// FormatLines writes each document to w as relaxed Extended JSON, one per line.
func FormatLines(w io.Writer, documents []bson.M) error {
	for i, document := range documents {
		line, err := Format(document)
		if err != nil {
			return fmt.Errorf("document #%d: %w", i, err)
		}
		if _, err = fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write document #%d: %w", i, err)
		}
	}

	return nil
}

// abbreviate shortens text to at most maxLength runes for error messages.
func abbreviate(text string) string {
	const maxLength = 40
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + "..."
}
