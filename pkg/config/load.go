package config

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// File is the YAML representation of a configuration.
//
// A file either spells out every width or names a built-in profile and
// overrides selected fields:
//
//	profile: a24d32l2c2
//	features: [sequential, fifo, compressed, read_modify_write]
type File struct {
	Profile      string   `yaml:"profile,omitempty"`
	Name         string   `yaml:"name,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	AddressBits  uint8    `yaml:"address_bits,omitempty"`
	AddressBytes uint8    `yaml:"address_bytes,omitempty"`
	DataBits     uint8    `yaml:"data_bits,omitempty"`
	DataBytes    uint8    `yaml:"data_bytes,omitempty"`
	LengthBytes  uint8    `yaml:"length_bytes,omitempty"`
	CrcBytes     uint8    `yaml:"crc_bytes,omitempty"`
	Features     []string `yaml:"features,omitempty"`
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Configuration)
)

// Profile returns the built-in profile with the given name.
func Profile(name string) (*Configuration, error) {
	key := strings.ToLower(name)

	cacheMu.RLock()
	if c, ok := cache[key]; ok {
		cacheMu.RUnlock()
		return c, nil
	}
	cacheMu.RUnlock()

	data, err := profileFS.ReadFile("profiles/" + key + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile %q not found: %w", name, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", name, err)
	}
	c, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}

	cacheMu.Lock()
	cache[key] = c
	cacheMu.Unlock()

	return c, nil
}

// MustProfile is like Profile but panics if the profile is missing.
func MustProfile(name string) *Configuration {
	c, err := Profile(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Profiles returns the names of all built-in profiles, sorted.
func Profiles() ([]string, error) {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading profiles directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if n := e.Name(); strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Configuration, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return f.Build()
}

// LoadFile reads and validates a YAML configuration file.
func LoadFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Build converts the file representation into a validated Configuration.
func (f File) Build() (*Configuration, error) {
	var p Params
	name := f.Name

	if f.Profile != "" {
		base, err := Profile(f.Profile)
		if err != nil {
			return nil, err
		}
		p = base.Params()
		if name == "" {
			name = base.Name()
		}
	}

	overlay(&p.AddressBits, f.AddressBits)
	overlay(&p.AddressBytes, f.AddressBytes)
	overlay(&p.DataBits, f.DataBits)
	overlay(&p.DataBytes, f.DataBytes)
	overlay(&p.LengthBytes, f.LengthBytes)
	overlay(&p.CrcBytes, f.CrcBytes)

	if f.Features != nil {
		features, err := parseFeatures(f.Features)
		if err != nil {
			return nil, err
		}
		p.Features = features
	}

	return NewNamed(name, p)
}

// FileFrom returns the file representation of c.
func FileFrom(c *Configuration) File {
	p := c.Params()
	features := p.Features.Names()
	if features == nil {
		features = []string{}
	}
	return File{
		Name:         c.Name(),
		AddressBits:  p.AddressBits,
		AddressBytes: p.AddressBytes,
		DataBits:     p.DataBits,
		DataBytes:    p.DataBytes,
		LengthBytes:  p.LengthBytes,
		CrcBytes:     p.CrcBytes,
		Features:     features,
	}
}

// Marshal encodes c as a YAML document accepted by Parse.
func Marshal(c *Configuration) ([]byte, error) {
	return yaml.Marshal(FileFrom(c))
}

func overlay(dst *uint8, v uint8) {
	if v != 0 {
		*dst = v
	}
}

func parseFeatures(names []string) (Feature, error) {
	var set Feature
	for _, n := range names {
		f, ok := ParseFeature(n)
		if !ok {
			return FeatureNone, fmt.Errorf("%w: unknown feature %q", ErrInvalidConfiguration, n)
		}
		set |= f
	}
	return set, nil
}
