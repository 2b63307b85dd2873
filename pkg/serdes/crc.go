package serdes

import (
	"github.com/snksoft/crc"
)

var (
	crc8Params = &crc.Parameters{
		Width:      8,
		Polynomial: 0x07,
		Init:       0x00,
		ReflectIn:  false,
		ReflectOut: false,
		FinalXor:   0x00,
	}
	crc16Params = &crc.Parameters{
		Width:      16,
		Polynomial: 0x1021,
		Init:       0xFFFF,
		ReflectIn:  false,
		ReflectOut: false,
		FinalXor:   0x0000,
	}
	crc32Params = &crc.Parameters{
		Width:      32,
		Polynomial: 0x04C11DB7,
		Init:       0xFFFFFFFF,
		ReflectIn:  true,
		ReflectOut: true,
		FinalXor:   0xFFFFFFFF,
	}
)

// Tables are read-only after init and shared by every Serdes.
var (
	crc8Table  = crc.NewTable(crc8Params)
	crc16Table = crc.NewTable(crc16Params)
	crc32Table = crc.NewTable(crc32Params)
)

// crcTable returns the table for a trailer of width bytes.
// Widths are validated by config.New.
func crcTable(width int) *crc.Table {
	switch width {
	case 1:
		return crc8Table
	case 2:
		return crc16Table
	default:
		return crc32Table
	}
}

// Checksum computes the CRC of data for a trailer of width bytes.
func Checksum(width int, data []byte) uint64 {
	return crcTable(width).CalculateCRC(data)
}
