package tabs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Filetype classifies a file by name, e.g. Plain Text for *.txt.
type Filetype struct {
	Name     string   `toml:"name"`
	Patterns []string `toml:"patterns"`
}

// filetypeFile is the top-level TOML structure.
type filetypeFile struct {
	Filetype []Filetype `toml:"filetype"`
}

const defaultFiletypesTOML = `# Quill filetype definitions
# Add new [[filetype]] blocks to classify more file kinds.

[[filetype]]
name = "Plain Text"
patterns = ["*.txt"]
`

// PlainText is the fallback filetype for files no pattern claims.
func PlainText() Filetype {
	return Filetype{Name: "Plain Text", Patterns: []string{"*.txt"}}
}

func DefaultFiletypes() []Filetype {
	return []Filetype{PlainText()}
}

// LoadFiletypes reads filetype definitions from path. A missing file is
// created with the defaults first, so users have something to edit.
func LoadFiletypes(path string) ([]Filetype, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return DefaultFiletypes(), fmt.Errorf("create filetype dir: %w", mkErr)
		}
		if wrErr := os.WriteFile(path, []byte(defaultFiletypesTOML), 0o644); wrErr != nil {
			return DefaultFiletypes(), fmt.Errorf("write default filetypes: %w", wrErr)
		}
		return DefaultFiletypes(), nil
	}
	if err != nil {
		return DefaultFiletypes(), fmt.Errorf("read filetypes: %w", err)
	}

	var parsed filetypeFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return DefaultFiletypes(), fmt.Errorf("parse filetypes: %w", err)
	}
	if len(parsed.Filetype) == 0 {
		return DefaultFiletypes(), nil
	}
	return parsed.Filetype, nil
}

// MatchFiletype picks the first filetype whose pattern matches the base
// name of path, falling back to Plain Text.
func MatchFiletype(filetypes []Filetype, path string) Filetype {
	base := filepath.Base(path)
	for _, ft := range filetypes {
		for _, pattern := range ft.Patterns {
			if ok, _ := filepath.Match(pattern, base); ok {
				return ft
			}
		}
	}
	return PlainText()
}
