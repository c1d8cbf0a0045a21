package markup

import (
	"strings"
)

// Directive binding of an attribute.
//
//	v-if="ok"              // if
//	v-on:click.stop="go"   // on, argument click, modifiers [stop]
//	:title="t"             // bind, argument title
//	@click="go"            // on, argument click
//	#header                // slot, argument header
//	v-bind:[key]="v"       // bind, dynamic argument key
type Directive struct {
	Name      string
	Argument  string
	Dynamic   bool
	Modifiers []string
}

const directivePrefix = "v-"

// shorthands maps single character directive shorthands to directive names.
var shorthands = map[byte]string{
	':': "bind",
	'.': "bind",
	'@': "on",
	'#': "slot",
}

// ParseDirective parses an attribute key as a directive binding. Keys that are not
// directives are reported with false.
func ParseDirective(key string) (*Directive, bool) {
	var d Directive
	var rest string

	switch {
	case strings.HasPrefix(key, directivePrefix):
		name := key[len(directivePrefix):]
		end := strings.IndexAny(name, ":.")
		if end < 0 {
			end = len(name)
		}
		d.Name = name[:end]
		if d.Name == "" {
			return nil, false
		}

		rest = name[end:]
		if strings.HasPrefix(rest, ":") {
			rest = rest[1:]
			d.Argument, d.Dynamic, rest = parseArgument(rest)
		}

	case len(key) > 1 && shorthands[key[0]] != "":
		d.Name = shorthands[key[0]]
		d.Argument, d.Dynamic, rest = parseArgument(key[1:])
		if key[0] == '.' {
			// .title is v-bind:title.prop
			d.Modifiers = append(d.Modifiers, "prop")
		}

	default:
		return nil, false
	}

	for rest != "" {
		if rest[0] != '.' {
			return nil, false
		}
		rest = rest[1:]

		end := strings.IndexByte(rest, '.')
		if end < 0 {
			end = len(rest)
		}
		if end == 0 {
			return nil, false
		}
		d.Modifiers = append(d.Modifiers, rest[:end])
		rest = rest[end:]
	}

	return &d, true
}

// parseArgument cuts a directive argument off the head of s. Dynamic arguments are
// bracketed and may contain dots.
func parseArgument(s string) (arg string, dynamic bool, rest string) {
	if strings.HasPrefix(s, "[") {
		if end := strings.IndexByte(s, ']'); end > 0 {
			return s[1:end], true, s[end+1:]
		}
	}

	end := strings.IndexByte(s, '.')
	if end < 0 {
		end = len(s)
	}

	return s[:end], false, s[end:]
}
