package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupportedFile is returned for files the front end cannot parse.
var ErrUnsupportedFile = errors.New("unsupported file")

// Language of a source file or of a script block.
type Language int

const (
	languageInvalid Language = iota
	LanguageTypeScript
	LanguageTSX
	LanguageJavaScript
	LanguageVue
)

var languageValueMap = map[Language]string{
	LanguageTypeScript: "ts",
	LanguageTSX:        "tsx",
	LanguageJavaScript: "js",
	LanguageVue:        "vue",
}

func (l Language) String() string {
	v, ok := languageValueMap[l]
	if !ok {
		return fmt.Sprintf("invalid(%d)", l)
	}

	return v
}

// UnmarshalText accepts lang attribute values of script blocks: ts, tsx, js, jsx.
func (l *Language) UnmarshalText(rawtext []byte) error {
	text := strings.ToLower(string(rawtext))
	switch text {
	case "", "jsx", "javascript":
		*l = LanguageJavaScript
		return nil
	case "typescript":
		*l = LanguageTypeScript
		return nil
	}

	for k, v := range languageValueMap {
		if v == text {
			*l = k
			return nil
		}
	}

	return fmt.Errorf("unknown language %q", text)
}

var languageByExt = map[string]Language{
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".vue": LanguageVue,
}

// LanguageOf picks the language by file extension.
func LanguageOf(path string) (Language, error) {
	lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return languageInvalid, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	return lang, nil
}

// Supported checks if the file can be parsed.
func Supported(path string) bool {
	_, err := LanguageOf(path)
	return err == nil
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case LanguageTypeScript:
		return typescript.GetLanguage()
	case LanguageTSX:
		return tsx.GetLanguage()
	case LanguageJavaScript:
		return javascript.GetLanguage()
	case LanguageVue:
		return html.GetLanguage()
	default:
		return nil
	}
}
