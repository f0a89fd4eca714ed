package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netgrab/framecap/internal/core"
)

// withDevices stubs device enumeration for the duration of a test.
func withDevices(t *testing.T, devs []Device, err error) {
	t.Helper()
	orig := enumerateDevices
	enumerateDevices = func() ([]Device, error) { return devs, err }
	t.Cleanup(func() { enumerateDevices = orig })
}

func TestDirectoryList(t *testing.T) {
	withDevices(t, []Device{
		{Name: "eth0", Description: "primary", Addresses: []string{"192.168.1.5"}},
		{Name: "lo"},
	}, nil)

	devs, err := NewDirectory().List()
	require.NoError(t, err)
	require.Len(t, devs, 2)
	assert.Equal(t, "eth0", devs[0].Name)
	assert.Equal(t, "primary", devs[0].Description)
}

func TestDirectoryListError(t *testing.T) {
	enumErr := errors.New("socket: permission denied")
	withDevices(t, nil, enumErr)

	_, err := NewDirectory().List()
	require.Error(t, err)
	assert.ErrorIs(t, err, enumErr)
}

func TestDirectorySelect(t *testing.T) {
	withDevices(t, []Device{{Name: "eth0"}, {Name: "eth1"}}, nil)

	dev, err := NewDirectory().Select("eth1")
	require.NoError(t, err)
	assert.Equal(t, "eth1", dev.Name)
}

func TestDirectorySelectNotFound(t *testing.T) {
	withDevices(t, []Device{{Name: "eth0"}}, nil)

	_, err := NewDirectory().Select("wlan0")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)
	assert.Contains(t, err.Error(), "wlan0")
}

func TestDirectorySelectNoDevices(t *testing.T) {
	withDevices(t, nil, nil)

	_, err := NewDirectory().Select("eth0")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoDevices)
}
