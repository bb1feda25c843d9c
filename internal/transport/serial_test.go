package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func withPorts(t *testing.T, ports []*enumerator.PortDetails, err error) {
	t.Helper()
	orig := Enumerator
	Enumerator = func() ([]*enumerator.PortDetails, error) { return ports, err }
	t.Cleanup(func() { Enumerator = orig })
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name  string
		ports []*enumerator.PortDetails
		want  string
	}{
		{
			name: "product keyword",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyS0"},
				{Name: "/dev/ttyUSB3", IsUSB: true, Product: "Arduino Uno"},
			},
			want: "/dev/ttyUSB3",
		},
		{
			name: "vendor id",
			ports: []*enumerator.PortDetails{
				{Name: "COM7", IsUSB: true, VID: "1a86", PID: "7523"},
			},
			want: "COM7",
		},
		{
			name: "usb device name",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyACM0", IsUSB: true, VID: "dead"},
			},
			want: "/dev/ttyACM0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withPorts(t, tt.ports, nil)
			got, err := Discover()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverNothing(t *testing.T) {
	withPorts(t, []*enumerator.PortDetails{{Name: "/dev/ttyS0"}, {Name: "/dev/ttyACM0"}}, nil)
	_, err := Discover()
	assert.ErrorIs(t, err, ErrNoDevice)

	errPerm := errors.New("permission denied")
	withPorts(t, nil, errPerm)
	_, err = Discover()
	assert.ErrorIs(t, err, errPerm)
}
