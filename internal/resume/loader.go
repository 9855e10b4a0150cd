package resume

import (
	"encoding/json"
	"fmt"
	"os"
)

// parseHints lists the most common JSON mistakes people make when editing the
// config by hand. They are attached to every parse failure.
var parseHints = []string{
	"Check for a missing comma between fields",
	"Check for a trailing comma after the last field in an object or array",
	"Check that all keys and string values are wrapped in double quotes",
	"Check for an unclosed bracket or brace",
	"Paste the file into https://jsonlint.com to locate the exact problem",
}

// Document is a parsed config together with its raw JSON form. The typed
// Config drives validation and the build summary; the raw map is what the
// template renderer walks, so unknown fields in the file still reach the
// template.
type Document struct {
	Config *Config
	Raw    map[string]any
	Path   string
}

// Load reads and parses the config file at path. A missing file is a hard
// failure, never silently replaced with defaults. Parse failures carry
// remediation hints.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{
				Kind: ErrKindNotFound,
				Path: path,
				Err:  fmt.Errorf("config file not found: %w", err),
			}
		}
		return nil, &LoadError{
			Kind: ErrKindRead,
			Path: path,
			Err:  fmt.Errorf("reading config file: %w", err),
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{
			Kind:  ErrKindParse,
			Path:  path,
			Hints: parseHints,
			Err:   fmt.Errorf("invalid JSON: %w", describeSyntaxError(data, err)),
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &LoadError{
			Kind:  ErrKindParse,
			Path:  path,
			Hints: parseHints,
			Err:   fmt.Errorf("invalid config structure: %w", err),
		}
	}

	return &Document{Config: &cfg, Raw: raw, Path: path}, nil
}

// describeSyntaxError augments encoding/json errors with line/column
// positions, which the stdlib only reports as byte offsets.
func describeSyntaxError(data []byte, err error) error {
	var offset int64
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	default:
		return err
	}

	line, col := int64(1), int64(1)
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return fmt.Errorf("%w (line %d, column %d)", err, line, col)
}
