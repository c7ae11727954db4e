// Package frontmatter splits a document into its YAML metadata header and
// Markdown body. Documents are read-only inputs here; there is no rewrite or
// round-trip support.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input. Both LF and CRLF newline styles are accepted.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	headerStart := len(open)

	// Empty frontmatter block: opening delimiter immediately followed by the
	// closing one.
	if bytes.HasPrefix(content[headerStart:], open) {
		return []byte{}, content[headerStart+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[headerStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter at end-of-input without a trailing newline still
		// terminates the header.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content[headerStart:], tail) {
			end := len(content) - len(tail)
			return content[headerStart : end+len(nl)], nil, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	headerEnd := headerStart + idx + len(nl)
	bodyStart := headerStart + idx + len(closeSeq)
	return content[headerStart:headerEnd], content[bodyStart:], true, nil
}

// ParseFields parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseFields(header []byte) (map[string]any, error) {
	if len(header) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
