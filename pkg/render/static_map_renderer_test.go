package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waypost/waypost/pkg/client"
)

func testRecord() *client.LocationRecord {
	now := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	return &client.LocationRecord{
		ID:        42,
		Latitude:  decimal.RequireFromString("34.05"),
		Longitude: decimal.RequireFromString("-118.25"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStaticMapRenderer_BuildsMapURL(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := NewStaticMapRenderer("test-key", logger)
	require.NoError(t, r.Render(testRecord()))

	out := buf.String()
	assert.Contains(t, out, "maps.googleapis.com/maps/api/staticmap")
	assert.Contains(t, out, "center=34.05%2C-118.25")
	assert.Contains(t, out, "zoom=15")
	assert.Contains(t, out, "key=test-key")
	assert.Contains(t, out, "Last Known Location!")
}

func TestLogRenderer_LogsCoordinates(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := NewLogRenderer(logger)
	require.NoError(t, r.Render(testRecord()))

	out := buf.String()
	assert.Contains(t, out, "34.05")
	assert.Contains(t, out, "-118.25")
}
