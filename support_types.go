package main

import (
	"encoding"
	"fmt"
)

// OutputFormat describes varieties of report output.
type OutputFormat int

const (
	OutputFormatInvalid OutputFormat = iota

	// OutputFormatText prints one report per line: file:line:column: severity: message [rule].
	OutputFormatText

	// OutputFormatJSON prints a JSON array of reports.
	OutputFormatJSON
)

var outputFormatValueMap = map[OutputFormat]string{
	OutputFormatText: "text",
	OutputFormatJSON: "json",
}

func (s OutputFormat) String() string {
	v, ok := outputFormatValueMap[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", s)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*OutputFormat)(nil)
	_ encoding.TextMarshaler   = OutputFormat(0)
)

func (s OutputFormat) MarshalText() ([]byte, error) {
	v, ok := outputFormatValueMap[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid OutputFormat(%d)", s)
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (s *OutputFormat) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range outputFormatValueMap {
		if v == text {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown output format %q", text)
}
