package rules

import (
	"encoding"
	"fmt"
)

// Severity of rule reports.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

var severityValueMap = map[Severity]string{
	SeverityOff:   "off",
	SeverityWarn:  "warn",
	SeverityError: "error",
}

func (s Severity) String() string {
	v, ok := severityValueMap[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", s)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*Severity)(nil)
	_ encoding.TextMarshaler   = Severity(0)
)

func (s Severity) MarshalText() ([]byte, error) {
	v, ok := severityValueMap[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Severity(%d)", s)
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with configs, CLI, etc. Numeric eslint-like
// levels 0, 1 and 2 are accepted as well.
func (s *Severity) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	switch text {
	case "0":
		*s = SeverityOff
		return nil
	case "1", "warning":
		*s = SeverityWarn
		return nil
	case "2":
		*s = SeverityError
		return nil
	}

	for k, v := range severityValueMap {
		if v == text {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", text)
}
