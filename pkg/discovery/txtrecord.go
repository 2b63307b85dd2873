package discovery

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rap-protocol/rap-go/pkg/config"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeServerTXT creates the TXT records describing a server's wire
// configuration.
func EncodeServerTXT(cfg *config.Configuration, maxMessageSize int) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyAddressWidth:   fmt.Sprintf("%d/%d", cfg.AddressBits(), cfg.AddressBytes()),
		TXTKeyDataWidth:      fmt.Sprintf("%d/%d", cfg.DataBits(), cfg.DataBytes()),
		TXTKeyLengthWidth:    strconv.Itoa(cfg.LengthBytes()),
		TXTKeyCrcWidth:       strconv.Itoa(cfg.CrcBytes()),
		TXTKeyFeatures:       strconv.FormatUint(uint64(cfg.Features()), 16),
		TXTKeyMaxMessageSize: strconv.Itoa(maxMessageSize),
	}
	if cfg.Name() != "" {
		txt[TXTKeyProfile] = cfg.Name()
	}
	return txt
}

// DecodeServerTXT parses TXT records into a validated configuration and the
// advertised max message size.
func DecodeServerTXT(txt TXTRecordMap) (*config.Configuration, int, error) {
	var p config.Params
	var err error

	if p.AddressBits, p.AddressBytes, err = parseWidth(txt, TXTKeyAddressWidth); err != nil {
		return nil, 0, err
	}
	if p.DataBits, p.DataBytes, err = parseWidth(txt, TXTKeyDataWidth); err != nil {
		return nil, 0, err
	}
	if p.LengthBytes, err = parseUint8(txt, TXTKeyLengthWidth, 10); err != nil {
		return nil, 0, err
	}
	if p.CrcBytes, err = parseUint8(txt, TXTKeyCrcWidth, 10); err != nil {
		return nil, 0, err
	}
	ft, err := parseUint8(txt, TXTKeyFeatures, 16)
	if err != nil {
		return nil, 0, err
	}
	if config.Feature(ft)&^config.FeatureAll != 0 {
		return nil, 0, fmt.Errorf("%w: %s=%s", ErrInvalidTXTRecord, TXTKeyFeatures, txt[TXTKeyFeatures])
	}
	p.Features = config.Feature(ft)

	mmStr, ok := txt[TXTKeyMaxMessageSize]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyMaxMessageSize)
	}
	mm, err := strconv.Atoi(mmStr)
	if err != nil || mm <= 0 {
		return nil, 0, fmt.Errorf("%w: %s=%s", ErrInvalidTXTRecord, TXTKeyMaxMessageSize, mmStr)
	}

	cfg, err := config.NewNamed(txt[TXTKeyProfile], p)
	if err != nil {
		return nil, 0, err
	}
	return cfg, mm, nil
}

func parseWidth(txt TXTRecordMap, key string) (bits, bytes uint8, err error) {
	v, ok := txt[key]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrMissingRequired, key)
	}
	b, n, found := strings.Cut(v, "/")
	if !found {
		return 0, 0, fmt.Errorf("%w: %s=%s", ErrInvalidTXTRecord, key, v)
	}
	bi, err1 := strconv.ParseUint(b, 10, 8)
	by, err2 := strconv.ParseUint(n, 10, 8)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: %s=%s", ErrInvalidTXTRecord, key, v)
	}
	return uint8(bi), uint8(by), nil
}

func parseUint8(txt TXTRecordMap, key string, base int) (uint8, error) {
	v, ok := txt[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingRequired, key)
	}
	n, err := strconv.ParseUint(v, base, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%s", ErrInvalidTXTRecord, key, v)
	}
	return uint8(n), nil
}

// TXTRecordsToStrings converts a TXTRecordMap to "key=value" strings, sorted
// by key.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		k, v, _ := strings.Cut(s, "=")
		if k != "" {
			txt[k] = v
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return ErrEmptyInstanceName
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
