package location

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// GPSSensorProvider reads the current position from a GPS receiver connected
// via serial port. The port is opened per sample so a flaky receiver cannot
// wedge the sampling loop between ticks.
type GPSSensorProvider struct {
	port     string
	baudRate int
}

// NewGPSSensorProvider creates a provider for the GPS device on the given
// serial port.
func NewGPSSensorProvider(port string, baudRate int) *GPSSensorProvider {
	return &GPSSensorProvider{
		port:     port,
		baudRate: baudRate,
	}
}

// Sample reads NMEA sentences from the device until a GGA fix is found or the
// context expires.
func (g *GPSSensorProvider) Sample(ctx context.Context) (Position, error) {
	s, err := serial.OpenPort(&serial.Config{Name: g.port, Baud: g.baudRate})
	if err != nil {
		return Position{}, fmt.Errorf("%w: opening %s: %v", ErrNoCapability, g.port, err)
	}
	defer s.Close()

	type fix struct {
		pos Position
		err error
	}
	ch := make(chan fix, 1)
	go func() {
		pos, err := readFix(s)
		ch <- fix{pos: pos, err: err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, &SampleError{Reason: "gps read timed out", Err: ctx.Err()}
	case f := <-ch:
		if f.err != nil {
			return Position{}, &SampleError{Reason: "gps read failed", Err: f.err}
		}
		return f.pos, nil
	}
}

// Close is a no-op; the serial port is opened and closed per sample.
func (g *GPSSensorProvider) Close() error {
	return nil
}

// readFix scans the NMEA stream for the first GGA sentence carrying a fix.
func readFix(r io.Reader) (Position, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "$GPGGA") && !strings.HasPrefix(line, "$GNGGA") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			return Position{}, err
		}

		gga, ok := sentence.(nmea.GGA)
		if !ok {
			continue
		}
		if gga.FixQuality == nmea.Invalid {
			continue
		}

		return PositionFromFloats(gga.Latitude, gga.Longitude), nil
	}

	if err := scanner.Err(); err != nil {
		return Position{}, err
	}
	return Position{}, errors.New("no valid GPS fix in stream")
}
