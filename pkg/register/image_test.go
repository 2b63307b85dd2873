package register

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rap-protocol/rap-go/pkg/config"
)

func TestSnapshotRestore(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()

	for name, tgt := range targets(cfg) {
		t.Run(name, func(t *testing.T) {
			src := tgt.(Snapshotter)
			require.NoError(t, tgt.Write(ctx, 0x10, 0xAA))
			require.NoError(t, tgt.FifoWrite(ctx, 0x20, []uint64{1, 2, 3}))

			img := src.Snapshot()
			assert.Equal(t, uint64(0xAA), img.Values[0x10])
			assert.Equal(t, []uint64{1, 2, 3}, img.Fifos[0x20])

			// The image is a copy.
			require.NoError(t, tgt.Write(ctx, 0x10, 0x55))
			assert.Equal(t, uint64(0xAA), img.Values[0x10])

			fresh := targets(cfg)[name]
			fresh.(Snapshotter).Restore(img)

			v, err := fresh.Read(ctx, 0x10)
			require.NoError(t, err)
			assert.Equal(t, uint64(0xAA), v)

			out := make([]uint64, 3)
			require.NoError(t, fresh.FifoRead(ctx, 0x20, out))
			assert.Equal(t, []uint64{1, 2, 3}, out)
		})
	}
}

func TestRestoreMasksValues(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	tgt := NewSimpleTarget("simple", cfg)

	tgt.Restore(Image{Values: map[uint64]uint64{0x01: 0x1FF}})
	assert.Equal(t, uint64(0xFF), tgt.Peek(0x01))
}

func TestAdvancedRestoreTruncatesFifos(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	tgt := NewAdvancedTarget("advanced", cfg, WithFifoDepth(2))

	tgt.Restore(Image{Fifos: map[uint64][]uint64{0x20: {1, 2, 3}}})
	assert.Equal(t, 2, tgt.FifoLen(0x20))
}
