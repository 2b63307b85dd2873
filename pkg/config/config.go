package config

import (
	"errors"
	"fmt"
)

// Width limits.
const (
	// MaxFieldBytes is the widest address or data field (uint64 carrier).
	MaxFieldBytes = 8

	// MaxLengthBytes is the widest element count field.
	MaxLengthBytes = 4
)

// ErrInvalidConfiguration is returned by New for inconsistent widths.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Params holds the raw values a Configuration is built from.
type Params struct {
	AddressBits  uint8
	AddressBytes uint8
	DataBits     uint8
	DataBytes    uint8
	LengthBytes  uint8
	CrcBytes     uint8
	Features     Feature
}

// Configuration is an immutable, validated RAP configuration.
// The zero value is not usable; construct with New.
type Configuration struct {
	name   string
	params Params

	addrMask  uint64
	dataMask  uint64
	maxLength uint64
}

// New validates p and returns a Configuration.
func New(p Params) (*Configuration, error) {
	return NewNamed("", p)
}

// NewNamed is New with a display name attached, used in logs and discovery.
func NewNamed(name string, p Params) (*Configuration, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Configuration{
		name:      name,
		params:    p,
		addrMask:  bitMask(p.AddressBits),
		dataMask:  bitMask(p.DataBits),
		maxLength: bitMask(p.LengthBytes * 8),
	}, nil
}

// MustNew is like New but panics on error. Intended for static profiles.
func MustNew(p Params) *Configuration {
	c, err := New(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the width constraints without building a Configuration.
func (p Params) Validate() error {
	if err := checkField("address", p.AddressBits, p.AddressBytes); err != nil {
		return err
	}
	if err := checkField("data", p.DataBits, p.DataBytes); err != nil {
		return err
	}
	if p.LengthBytes == 0 || p.LengthBytes > MaxLengthBytes {
		return fmt.Errorf("%w: length bytes %d not in 1..%d", ErrInvalidConfiguration, p.LengthBytes, MaxLengthBytes)
	}
	switch p.CrcBytes {
	case 1, 2, 4:
	default:
		return fmt.Errorf("%w: crc bytes %d not one of 1, 2, 4", ErrInvalidConfiguration, p.CrcBytes)
	}
	if p.Features&^FeatureAll != 0 {
		return fmt.Errorf("%w: unknown feature bits 0x%02x", ErrInvalidConfiguration, uint8(p.Features&^FeatureAll))
	}
	return nil
}

func checkField(name string, bits, bytes uint8) error {
	if bytes == 0 || bytes > MaxFieldBytes {
		return fmt.Errorf("%w: %s bytes %d not in 1..%d", ErrInvalidConfiguration, name, bytes, MaxFieldBytes)
	}
	if bits == 0 {
		return fmt.Errorf("%w: %s bits must be non-zero", ErrInvalidConfiguration, name)
	}
	if uint16(bits) > uint16(bytes)*8 {
		return fmt.Errorf("%w: %s bits %d do not fit in %d bytes", ErrInvalidConfiguration, name, bits, bytes)
	}
	return nil
}

func bitMask(bits uint8) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// Name returns the profile name, or an empty string for anonymous configurations.
func (c *Configuration) Name() string { return c.name }

// Params returns a copy of the values the configuration was built from.
func (c *Configuration) Params() Params { return c.params }

// AddressBits returns the number of significant address bits.
func (c *Configuration) AddressBits() uint8 { return c.params.AddressBits }

// AddressBytes returns the wire width of an address.
func (c *Configuration) AddressBytes() int { return int(c.params.AddressBytes) }

// DataBits returns the number of significant data bits.
func (c *Configuration) DataBits() uint8 { return c.params.DataBits }

// DataBytes returns the wire width of a data value.
func (c *Configuration) DataBytes() int { return int(c.params.DataBytes) }

// LengthBytes returns the wire width of an element count.
func (c *Configuration) LengthBytes() int { return int(c.params.LengthBytes) }

// CrcBytes returns the wire width of the CRC trailer.
func (c *Configuration) CrcBytes() int { return int(c.params.CrcBytes) }

// AddressMask returns a mask of the significant address bits.
func (c *Configuration) AddressMask() uint64 { return c.addrMask }

// DataMask returns a mask of the significant data bits.
func (c *Configuration) DataMask() uint64 { return c.dataMask }

// MaxLength returns the largest count the length field can carry.
func (c *Configuration) MaxLength() uint64 { return c.maxLength }

// Features returns the enabled feature set.
func (c *Configuration) Features() Feature { return c.params.Features }

// Has reports whether all features in f are enabled.
func (c *Configuration) Has(f Feature) bool { return c.params.Features.Has(f) }

// Sequential reports whether sequential access is enabled.
func (c *Configuration) Sequential() bool { return c.Has(FeatureSequential) }

// Fifo reports whether FIFO access is enabled.
func (c *Configuration) Fifo() bool { return c.Has(FeatureFifo) }

// Increment reports whether arbitrary strides are enabled.
func (c *Configuration) Increment() bool { return c.Has(FeatureIncrement) }

// Compressed reports whether compressed access is enabled.
func (c *Configuration) Compressed() bool { return c.Has(FeatureCompressed) }

// Interrupt reports whether interrupts are enabled.
func (c *Configuration) Interrupt() bool { return c.Has(FeatureInterrupt) }

// ReadModifyWrite reports whether read-modify-write is enabled.
func (c *Configuration) ReadModifyWrite() bool { return c.Has(FeatureReadModifyWrite) }

// Layout returns the unnamed compact form, for example
// "A24D32L2C2[sequential|fifo]". Equal configurations have equal layouts.
func (c *Configuration) Layout() string {
	return fmt.Sprintf("A%dD%dL%dC%d[%s]",
		c.params.AddressBits, c.params.DataBits, c.params.LengthBytes, c.params.CrcBytes, c.params.Features)
}

// String returns the name followed by the Layout.
func (c *Configuration) String() string {
	s := c.Layout()
	if c.name != "" {
		return c.name + " " + s
	}
	return s
}

// Equal reports whether two configurations describe the same wire format.
// Names are ignored.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.params == other.params
}
