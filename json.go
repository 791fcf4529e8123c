package aioconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// optionDoc is the wire form of an OptionSpec inside a spec JSON document.
// encoding/json ignores unknown keys in option records, keeping parsing
// tolerant of documents written by newer tooling.
type optionDoc struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Default     any      `json:"default"`
	Env         string   `json:"env,omitempty"`
	CLI         flagList `json:"cli,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Description string   `json:"description,omitempty"`
}

// specDoc is the wire form of a ConfigSpec.
type specDoc struct {
	Options    []optionDoc         `json:"options"`
	Subconfigs map[string]*specDoc `json:"subconfigs,omitempty"`
}

// flagList accepts either a single string or a list of strings for the "cli"
// key, normalizing the single-string form to a one-element list.
type flagList []string

func (f *flagList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = flagList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("cli binding must be a string or a list of strings: %w", err)
	}
	*f = flagList(many)
	return nil
}

// ParseSpec deserializes a spec JSON document. Type names go through the
// fixed name table (unknown names fall back to string), and defaults are
// normalized to each option's canonical scalar type, so a serialize/parse
// round trip reproduces an equivalent spec.
func ParseSpec(data []byte) (*ConfigSpec, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc specDoc
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse spec document: %w", err)
	}
	return specFromDoc(&doc), nil
}

// LoadSpecFile reads and parses a spec JSON document from disk.
func LoadSpecFile(path string) (*ConfigSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file '%s': %w", path, err)
	}

	spec, err := ParseSpec(data)
	if err != nil {
		return nil, fmt.Errorf("spec file '%s': %w", path, err)
	}
	return spec, nil
}

// JSON serializes the spec to an indented JSON document, the exact
// structural inverse of ParseSpec.
func (s *ConfigSpec) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(specToDoc(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec: %w", err)
	}
	return data, nil
}

// SaveFile writes the spec JSON document to disk atomically.
func (s *ConfigSpec) SaveFile(path string) error {
	data, err := s.JSON()
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

func specToDoc(spec *ConfigSpec) *specDoc {
	doc := &specDoc{Options: make([]optionDoc, 0, len(spec.Options))}

	for _, opt := range spec.Options {
		doc.Options = append(doc.Options, optionDoc{
			Name:        opt.Name,
			Type:        opt.Kind.String(),
			Default:     opt.Default,
			Env:         opt.Env,
			CLI:         flagList(opt.CLI),
			Required:    opt.Required,
			Description: opt.Description,
		})
	}

	if len(spec.Sections) > 0 {
		doc.Subconfigs = make(map[string]*specDoc, len(spec.Sections))
		for name, sub := range spec.Sections {
			doc.Subconfigs[name] = specToDoc(sub)
		}
	}

	return doc
}

func specFromDoc(doc *specDoc) *ConfigSpec {
	spec := NewSpec()

	for _, record := range doc.Options {
		opt := Option(record.Name, KindFromName(record.Type))
		if record.Default != nil {
			opt.WithDefault(record.Default)
		}
		opt.Env = record.Env
		opt.CLI = []string(record.CLI)
		opt.Required = record.Required
		opt.Description = record.Description
		spec.Add(opt)
	}

	for name, sub := range doc.Subconfigs {
		spec.Section(name).merge(specFromDoc(sub))
	}

	return spec
}

// merge copies another spec's contents into this one. Used when rebuilding a
// section created by Section from its wire form.
func (s *ConfigSpec) merge(other *ConfigSpec) {
	s.Options = append(s.Options, other.Options...)
	for name, sub := range other.Sections {
		s.Section(name).merge(sub)
	}
}
