package rummage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/rummage/pkg/rummage"
)

func TestFileType_String(t *testing.T) {
	tests := []struct {
		typ  rummage.FileType
		want string
	}{
		{rummage.TypeFile, "regular file"},
		{rummage.TypeDirectory, "directory"},
		{rummage.TypeDevice, "device"},
		{rummage.TypeSymlink, "symbolic link"},
		{rummage.TypeNone, "unknown"},
		{rummage.FileType(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestParseTypeFlag(t *testing.T) {
	typ, err := rummage.ParseTypeFlag("f")
	assert.NoError(t, err)
	assert.Equal(t, rummage.TypeFile, typ)

	typ, err = rummage.ParseTypeFlag("d")
	assert.NoError(t, err)
	assert.Equal(t, rummage.TypeDirectory, typ)

	for _, bad := range []string{"", "l", "F", "dir"} {
		typ, err = rummage.ParseTypeFlag(bad)
		if !errors.Is(err, rummage.ErrUsage) {
			t.Errorf("ParseTypeFlag(%q) error = %v, want ErrUsage", bad, err)
		}
		assert.Equal(t, rummage.TypeNone, typ)
	}
}

func TestMetadata_DeviceHalves(t *testing.T) {
	m := rummage.Metadata{Type: rummage.TypeDirectory, Device: 0x1F02}
	assert.True(t, m.IsDir())
	assert.Equal(t, uint64(0x1F), m.DeviceMajor())
	assert.Equal(t, uint64(0x02), m.DeviceMinor())
}
