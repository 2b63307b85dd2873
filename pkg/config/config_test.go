package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	valid := Params{
		AddressBits: 24, AddressBytes: 3,
		DataBits: 32, DataBytes: 4,
		LengthBytes: 2, CrcBytes: 2,
		Features: FeatureSequential | FeatureFifo,
	}

	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr bool
	}{
		{"valid", func(p *Params) {}, false},
		{"address bits exceed bytes", func(p *Params) { p.AddressBits = 25 }, true},
		{"data bits exceed bytes", func(p *Params) { p.DataBits = 33 }, true},
		{"zero address bytes", func(p *Params) { p.AddressBytes = 0 }, true},
		{"zero data bytes", func(p *Params) { p.DataBytes = 0 }, true},
		{"zero address bits", func(p *Params) { p.AddressBits = 0 }, true},
		{"address wider than carrier", func(p *Params) { p.AddressBytes = 9; p.AddressBits = 72 }, true},
		{"zero length bytes", func(p *Params) { p.LengthBytes = 0 }, true},
		{"length bytes too wide", func(p *Params) { p.LengthBytes = 5 }, true},
		{"crc bytes 3", func(p *Params) { p.CrcBytes = 3 }, true},
		{"crc bytes 4", func(p *Params) { p.CrcBytes = 4 }, false},
		{"crc bytes 0", func(p *Params) { p.CrcBytes = 0 }, true},
		{"unknown feature bits", func(p *Params) { p.Features = 0x80 }, true},
		{"fewer bits than bytes", func(p *Params) { p.DataBits = 12 }, false},
		{"64 bit fields", func(p *Params) {
			p.AddressBits, p.AddressBytes, p.DataBits, p.DataBytes = 64, 8, 64, 8
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			c, err := New(p)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p, c.Params())
		})
	}
}

func TestConfigurationAccessors(t *testing.T) {
	c := MustNew(Params{
		AddressBits: 12, AddressBytes: 2,
		DataBits: 64, DataBytes: 8,
		LengthBytes: 1, CrcBytes: 1,
		Features: FeatureCompressed | FeatureReadModifyWrite,
	})

	assert.Equal(t, 2, c.AddressBytes())
	assert.Equal(t, 8, c.DataBytes())
	assert.Equal(t, uint64(0xFFF), c.AddressMask())
	assert.Equal(t, ^uint64(0), c.DataMask())
	assert.Equal(t, uint64(0xFF), c.MaxLength())

	assert.True(t, c.Compressed())
	assert.True(t, c.ReadModifyWrite())
	assert.False(t, c.Sequential())
	assert.False(t, c.Fifo())
	assert.False(t, c.Increment())
	assert.False(t, c.Interrupt())
	assert.True(t, c.Has(FeatureCompressed|FeatureReadModifyWrite))
	assert.False(t, c.Has(FeatureCompressed|FeatureFifo))

	assert.Equal(t, "A12D64L1C1[compressed|read_modify_write]", c.String())
	assert.Equal(t, c.String(), c.Layout())

	p := MustProfile("a8d8l1c1")
	assert.Equal(t, p.Name()+" "+p.Layout(), p.String())
}

func TestMaxLength(t *testing.T) {
	for lb, want := range map[uint8]uint64{1: 0xFF, 2: 0xFFFF, 3: 0xFFFFFF, 4: 0xFFFFFFFF} {
		c := MustNew(Params{AddressBits: 8, AddressBytes: 1, DataBits: 8, DataBytes: 1, LengthBytes: lb, CrcBytes: 1})
		assert.Equal(t, want, c.MaxLength(), "length bytes %d", lb)
	}
}

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "none", FeatureNone.String())
	assert.Equal(t, "sequential|fifo", (FeatureSequential | FeatureFifo).String())
	assert.Len(t, FeatureAll.Names(), 6)

	f, ok := ParseFeature("Read-Modify-Write")
	assert.True(t, ok)
	assert.Equal(t, FeatureReadModifyWrite, f)

	f, ok = ParseFeature("rmw")
	assert.True(t, ok)
	assert.Equal(t, FeatureReadModifyWrite, f)

	_, ok = ParseFeature("turbo")
	assert.False(t, ok)
}

func TestEqualIgnoresName(t *testing.T) {
	p := Params{AddressBits: 8, AddressBytes: 1, DataBits: 8, DataBytes: 1, LengthBytes: 1, CrcBytes: 1}
	a, err := NewNamed("a", p)
	require.NoError(t, err)
	b, err := NewNamed("b", p)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	p.CrcBytes = 2
	c := MustNew(p)
	assert.False(t, a.Equal(c))
}
