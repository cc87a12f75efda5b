package form

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Kinds of input a field renders as
const (
	KindText   = "text"
	KindEmail  = "email"
	KindTel    = "tel"
	KindSelect = "select"
)

// Lead roles tie a variant's field names to the submitted lead record
const (
	LeadName     = "name"
	LeadEmail    = "email"
	LeadCompany  = "company"
	LeadMobile   = "mobile"
	LeadRole     = "role"
	LeadTeamSize = "team_size"
)

//go:embed variants.yaml
var builtinVariants []byte

// Field describes one input of a form variant
type Field struct {
	Name        string   `yaml:"name"`
	Placeholder string   `yaml:"placeholder"`
	Kind        string   `yaml:"kind"`
	Lead        string   `yaml:"lead"`
	Options     []string `yaml:"options,omitempty"`
}

// Step is one screen of the form
type Step struct {
	Label    string   `yaml:"label"`
	Icon     string   `yaml:"icon"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Fields   []string `yaml:"fields"`
	Required []string `yaml:"required"`
}

// Variant is the declarative step table a Machine runs against
type Variant struct {
	Name        string  `yaml:"name"`
	SubmitLabel string  `yaml:"submit_label"`
	Fields      []Field `yaml:"fields"`
	Steps       []Step  `yaml:"steps"`
}

// Field returns the field definition with the given name
func (v *Variant) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldFor returns the name of the field carrying the given lead role
func (v *Variant) FieldFor(lead string) string {
	for _, f := range v.Fields {
		if f.Lead == lead {
			return f.Name
		}
	}
	return ""
}

// Validate checks that the step table is self-consistent
func (v *Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidVariant)
	}
	if len(v.Steps) == 0 {
		return fmt.Errorf("%w: %s has no steps", ErrInvalidVariant, v.Name)
	}

	declared := make(map[string]bool, len(v.Fields))
	for _, f := range v.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s has a field without a name", ErrInvalidVariant, v.Name)
		}
		if declared[f.Name] {
			return fmt.Errorf("%w: %s declares field %q twice", ErrInvalidVariant, v.Name, f.Name)
		}
		declared[f.Name] = true
	}

	for i, s := range v.Steps {
		shown := make(map[string]bool, len(s.Fields))
		for _, name := range s.Fields {
			if !declared[name] {
				return fmt.Errorf("%w: %s step %d shows undeclared field %q", ErrInvalidVariant, v.Name, i, name)
			}
			shown[name] = true
		}
		for _, name := range s.Required {
			if !shown[name] {
				return fmt.Errorf("%w: %s step %d requires %q which it does not show", ErrInvalidVariant, v.Name, i, name)
			}
		}
	}
	return nil
}

// Variants is a set of form variants keyed by name
type Variants map[string]*Variant

// Get looks up a variant by name
func (vs Variants) Get(name string) (*Variant, error) {
	v, ok := vs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
	}
	return v, nil
}

// Names returns the variant names in sorted order
func (vs Variants) Names() []string {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadVariants decodes and validates a YAML list of variants
func LoadVariants(r io.Reader) (Variants, error) {
	var list []*Variant
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("error decoding variants: %w", err)
	}

	vs := make(Variants, len(list))
	for _, v := range list {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := vs[v.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate variant %q", ErrInvalidVariant, v.Name)
		}
		vs[v.Name] = v
	}
	return vs, nil
}

// BuiltinVariants returns the variants shipped with the binary
func BuiltinVariants() Variants {
	vs, err := LoadVariants(bytes.NewReader(builtinVariants))
	if err != nil {
		panic(fmt.Sprintf("builtin variants: %v", err))
	}
	return vs
}
