package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError represents a parsing error with location info.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Name     string            `yaml:"name"`
	Platform string            `yaml:"platform"` // Optional: run only on this platform
	Env      map[string]string `yaml:"env"`

	Steps      []Step `yaml:"-"`
	SourcePath string `yaml:"-"`
}

// ParseFile parses a single scenario YAML file.
func ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is a user-provided scenario file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses scenario YAML content. A file is either a bare step list
// or a header document followed by a `---` separator and the step list.
func Parse(data []byte, sourcePath string) (*Scenario, error) {
	header, body := splitDocuments(string(data))

	s := &Scenario{SourcePath: sourcePath}

	if header != "" {
		if err := yaml.Unmarshal([]byte(header), s); err != nil {
			return nil, &ParseError{Path: sourcePath, Message: fmt.Sprintf("invalid header: %v", err)}
		}
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	}

	var steps []Step
	if err := yaml.Unmarshal([]byte(body), &steps); err != nil {
		return nil, &ParseError{Path: sourcePath, Message: err.Error()}
	}
	if len(steps) == 0 {
		return nil, &ParseError{Path: sourcePath, Message: "scenario has no steps"}
	}
	s.Steps = steps

	return s, nil
}

// ParseDir parses every .yaml/.yml file directly inside dir, sorted by
// name. Subdirectories are not descended into.
func ParseDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}
		s, err := ParseFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenario files in %q", dir)
	}
	return scenarios, nil
}

// ParseGlob parses every scenario matching the pattern, sorted by path.
func ParseGlob(pattern string) ([]*Scenario, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios match %q", pattern)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// splitDocuments splits a file into an optional header document and the
// step-list document on the first top-level `---` line.
func splitDocuments(content string) (header, body string) {
	content = strings.TrimPrefix(content, "---\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return "", content
}
