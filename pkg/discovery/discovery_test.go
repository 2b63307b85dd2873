package discovery

import (
	"net"
	"testing"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rap-protocol/rap-go/pkg/config"
)

func TestServerTXTRoundTrip(t *testing.T) {
	for _, name := range []string{"example", "a8d8l1c1", "a48d64l2c4", "large", "big-addr-small-data"} {
		t.Run(name, func(t *testing.T) {
			cfg := config.MustProfile(name)

			txt := EncodeServerTXT(cfg, 512)
			got, mm, err := DecodeServerTXT(StringsToTXTRecords(TXTRecordsToStrings(txt)))
			require.NoError(t, err)

			assert.True(t, cfg.Equal(got), "got %s, want %s", got, cfg)
			assert.Equal(t, 512, mm)
			assert.Equal(t, cfg.Name(), got.Name())
		})
	}
}

func TestEncodeServerTXTValues(t *testing.T) {
	txt := EncodeServerTXT(config.MustProfile("example"), 64)

	assert.Equal(t, "24/3", txt[TXTKeyAddressWidth])
	assert.Equal(t, "32/4", txt[TXTKeyDataWidth])
	assert.Equal(t, "2", txt[TXTKeyLengthWidth])
	assert.Equal(t, "2", txt[TXTKeyCrcWidth])
	assert.Equal(t, "3f", txt[TXTKeyFeatures])
	assert.Equal(t, "64", txt[TXTKeyMaxMessageSize])
	assert.Equal(t, "example", txt[TXTKeyProfile])
}

func TestDecodeServerTXTErrors(t *testing.T) {
	valid := func() TXTRecordMap {
		return EncodeServerTXT(config.MustProfile("small"), 32)
	}

	tests := []struct {
		name    string
		mutate  func(TXTRecordMap)
		wantErr error
	}{
		{"missing aw", func(m TXTRecordMap) { delete(m, TXTKeyAddressWidth) }, ErrMissingRequired},
		{"missing mm", func(m TXTRecordMap) { delete(m, TXTKeyMaxMessageSize) }, ErrMissingRequired},
		{"bad width", func(m TXTRecordMap) { m[TXTKeyDataWidth] = "8" }, ErrInvalidTXTRecord},
		{"bad number", func(m TXTRecordMap) { m[TXTKeyCrcWidth] = "two" }, ErrInvalidTXTRecord},
		{"unknown feature bits", func(m TXTRecordMap) { m[TXTKeyFeatures] = "ff" }, ErrInvalidTXTRecord},
		{"zero max size", func(m TXTRecordMap) { m[TXTKeyMaxMessageSize] = "0" }, ErrInvalidTXTRecord},
		{"inconsistent widths", func(m TXTRecordMap) { m[TXTKeyAddressWidth] = "20/2" }, config.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txt := valid()
			tt.mutate(txt)
			_, _, err := DecodeServerTXT(txt)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTXTRecordStrings(t *testing.T) {
	strs := TXTRecordsToStrings(TXTRecordMap{"mm": "64", "aw": "8/1", "flag": ""})
	assert.Equal(t, []string{"aw=8/1", "flag=", "mm=64"}, strs)

	m := StringsToTXTRecords([]string{"a=b=c", "bare", "", "=x"})
	assert.Equal(t, TXTRecordMap{"a": "b=c", "bare": ""}, m)
}

func TestServiceType(t *testing.T) {
	st, err := ServiceType("udp")
	require.NoError(t, err)
	assert.Equal(t, ServiceTypeUDP, st)

	st, err = ServiceType("tcp4")
	require.NoError(t, err)
	assert.Equal(t, ServiceTypeTCP, st)

	_, err = ServiceType("sctp")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestValidateInstanceName(t *testing.T) {
	assert.NoError(t, ValidateInstanceName("rap-server"))
	assert.ErrorIs(t, ValidateInstanceName(""), ErrEmptyInstanceName)
	long := make([]byte, MaxInstanceNameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ValidateInstanceName(string(long)), ErrInstanceNameTooLong)
}

func testEntry(instance string, txt []string, ips ...string) *zeroconf.ServiceEntry {
	e := &zeroconf.ServiceEntry{}
	e.Instance = instance
	e.HostName = "host.local."
	e.Port = 4740
	e.Text = txt
	for _, ip := range ips {
		parsed := net.ParseIP(ip)
		if parsed.To4() != nil {
			e.AddrIPv4 = append(e.AddrIPv4, parsed)
		} else {
			e.AddrIPv6 = append(e.AddrIPv6, parsed)
		}
	}
	return e
}

func TestEntryToService(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	txt := TXTRecordsToStrings(EncodeServerTXT(cfg, 32))

	svc := entryToService(testEntry("bench", txt, "192.168.1.10", "fe80::1"), "udp")
	require.NotNil(t, svc)
	assert.Equal(t, "bench", svc.InstanceName)
	assert.Equal(t, uint16(4740), svc.Port)
	assert.Equal(t, 32, svc.MaxMessageSize)
	assert.True(t, cfg.Equal(svc.Config))
	assert.Equal(t, []string{"192.168.1.10:4740", "[fe80::1]:4740"}, svc.Endpoints())

	assert.Nil(t, entryToService(testEntry("junk", []string{"aw=1/1"}), "udp"))
}

func TestAddressAggregation(t *testing.T) {
	merged := mergeAddresses([]string{"10.0.0.1"}, []string{"10.0.0.1", "10.0.0.2"})
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, merged)

	left := removeAddresses(merged, testEntry("x", nil, "10.0.0.1"))
	assert.Equal(t, []string{"10.0.0.2"}, left)
}
