// Package checklist holds the fixed, ordered set of sections and tasks the
// tracker presents. Tasks are addressed by their position in the flattened
// list, so the order here is part of the persisted state's meaning.
package checklist

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Section struct {
	Title string   `yaml:"title"`
	Tasks []string `yaml:"tasks"`
}

type Definition struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Default returns the built-in checklist.
func Default() Definition {
	def, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("checklist: embedded default is invalid: %v", err))
	}
	return def
}

// Load reads a definition from path, or returns Default when path is empty.
func Load(path string) (Definition, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, err
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func (d Definition) Validate() error {
	for i, s := range d.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("section %d: title is empty", i)
		}
		for j, label := range s.Tasks {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("section %q task %d: label is empty", s.Title, j)
			}
		}
	}
	return nil
}

// TaskCount is the number of tasks across all sections.
func (d Definition) TaskCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Tasks)
	}
	return n
}

// Offsets returns the flattened index of each section's first task.
func (d Definition) Offsets() []int {
	out := make([]int, len(d.Sections))
	n := 0
	for i, s := range d.Sections {
		out[i] = n
		n += len(s.Tasks)
	}
	return out
}

// Locate maps a flattened task index to its section and position within it.
func (d Definition) Locate(index int) (section, pos int, err error) {
	if index < 0 {
		return 0, 0, ErrOutOfRange
	}
	for i, s := range d.Sections {
		if index < len(s.Tasks) {
			return i, index, nil
		}
		index -= len(s.Tasks)
	}
	return 0, 0, ErrOutOfRange
}

// Fingerprint identifies the layout: section titles and task labels in
// order. Two definitions with equal fingerprints map task keys to the same
// tasks.
func (d Definition) Fingerprint() string {
	h := sha256.New()
	for _, s := range d.Sections {
		fmt.Fprintf(h, "s%d:%s\n", len(s.Title), s.Title)
		for _, label := range s.Tasks {
			fmt.Fprintf(h, "t%d:%s\n", len(label), label)
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

var ErrOutOfRange = errors.New("task index out of range")

// Key is the persisted identifier of the task at index.
func Key(index int) string {
	return fmt.Sprintf("task-%d", index)
}
