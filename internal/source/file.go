// Package source is the parser front end. It turns TypeScript and JavaScript modules
// and single-file components into syntax trees with parent links set, plus the template
// markup tree for components.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/markup"
)

// File is a parsed source file.
type File struct {
	Path     string
	Language Language
	Content  []byte
	Lines    *Lines

	// Program merges all script blocks of a component. It is never nil.
	Program *esnode.Node

	// Template is the top-level <template> element of a component, nil otherwise.
	Template *markup.Element

	// Scripts lists script blocks of a component in source order.
	Scripts []ScriptBlock

	// SyntaxErrors is set when the parser had to recover from errors.
	SyntaxErrors bool
}

// ParseFile reads and parses the file.
func ParseFile(ctx context.Context, path string) (*File, error) {
	if _, err := LanguageOf(path); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	return Parse(ctx, path, content)
}

// Parse parses the content, the language is picked by the path extension.
func Parse(ctx context.Context, path string, content []byte) (*File, error) {
	lang, err := LanguageOf(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		Path:     path,
		Language: lang,
		Content:  content,
		Lines:    NewLines(content),
	}

	switch lang {
	case LanguageVue:
		if err := parseSFC(ctx, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

	default:
		program, hasErrors, err := parseScript(ctx, lang, content, 0, f.Lines)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		f.Program = program
		f.SyntaxErrors = hasErrors
	}

	esnode.Link(f.Program)
	return f, nil
}
