package lib

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Script is one source file together with its parse result.
type Script struct {
	Name    string
	Path    string
	Source  string
	Program Program
	Model   Model
}

// ReadScriptsDir loads every file in dir whose name ends in ext, in file name
// order. The first script that fails to parse aborts the load.
func ReadScriptsDir(dir string, ext string, logger *slog.Logger) ([]Script, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	scripts := []Script{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			logger.Debug("skipping file", "dir", dir, "file", entry.Name())
			continue
		}

		s, err := ReadScriptFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("script failed to load", "file", entry.Name(), "error", err)
			return nil, err
		}
		logger.Debug("loaded script",
			"name", s.Name,
			"statements", len(s.Program.Statements),
			"functions", len(s.Model.Functions),
		)
		scripts = append(scripts, s)
	}

	return scripts, nil
}

func ReadScriptFromFile(filePath string) (Script, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return Script{}, err
	}
	return NewScript(scriptNameFromPath(filePath), filePath, string(bytes))
}

// NewScript parses source and builds its model. path is used in diagnostics.
func NewScript(name string, path string, source string) (Script, error) {
	s := Script{
		Name:   name,
		Path:   path,
		Source: source,
	}

	prog, err := ParseAll(path, source)
	if err != nil {
		return Script{}, err
	}
	s.Program = prog

	model, err := ModelFromProgram(prog)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	s.Model = model

	return s, nil
}

func scriptNameFromPath(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
