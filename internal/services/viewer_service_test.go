package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/waypost/waypost/pkg/client"
)

// TestViewerService_StartStop tests the Start and Stop lifecycle of the ViewerService.
func TestViewerService_StartStop(t *testing.T) {
	// Setup
	locationClient := new(mockLocationClient)
	renderer := new(mockRenderer)

	locationClient.On("FetchLatest", mock.Anything).Return(sampleRecord(), nil)
	renderer.On("Render", mock.Anything).Return(nil)

	svc := NewViewerService(time.Hour, locationClient, renderer, zerolog.Nop())

	// Execute
	err := svc.Start()
	assert.NoError(t, err)

	err = svc.Start()
	assert.Error(t, err)
	assert.Equal(t, "viewer service is already running", err.Error())

	err = svc.Stop()
	assert.NoError(t, err)

	err = svc.Stop()
	assert.Error(t, err)
	assert.Equal(t, "viewer service is not running", err.Error())
}

// TestViewerService_RefreshRendersLatest tests that a successful refresh
// paints the marker and records it.
func TestViewerService_RefreshRendersLatest(t *testing.T) {
	// Setup
	locationClient := new(mockLocationClient)
	renderer := new(mockRenderer)

	record := sampleRecord()
	locationClient.On("FetchLatest", mock.Anything).Return(record, nil)
	renderer.On("Render", record).Return(nil)

	svc := NewViewerService(time.Hour, locationClient, renderer, zerolog.Nop())

	// Execute
	err := svc.Start()
	assert.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	err = svc.Stop()
	assert.NoError(t, err)

	// Assert
	renderer.AssertCalled(t, "Render", record)
	assert.Equal(t, record, svc.LastRendered())
}

// TestViewerService_EmptyStoreRendersNothing tests that an empty store leaves
// the viewer blank.
func TestViewerService_EmptyStoreRendersNothing(t *testing.T) {
	// Setup
	locationClient := new(mockLocationClient)
	renderer := new(mockRenderer)

	locationClient.On("FetchLatest", mock.Anything).Return(nil, client.ErrNotFound)

	svc := NewViewerService(time.Hour, locationClient, renderer, zerolog.Nop())

	// Execute
	err := svc.Start()
	assert.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	err = svc.Stop()
	assert.NoError(t, err)

	// Assert
	renderer.AssertNotCalled(t, "Render", mock.Anything)
	assert.Nil(t, svc.LastRendered())
}

// TestViewerService_TransientFailureKeepsMarker tests that a fetch failure
// after a successful render leaves the previous marker in place.
func TestViewerService_TransientFailureKeepsMarker(t *testing.T) {
	// Setup
	locationClient := new(mockLocationClient)
	renderer := new(mockRenderer)

	record := sampleRecord()
	locationClient.On("FetchLatest", mock.Anything).Return(record, nil).Once()
	locationClient.On("FetchLatest", mock.Anything).
		Return(nil, &client.TransportError{Op: "fetch latest", Err: errors.New("timeout")})
	renderer.On("Render", record).Return(nil)

	svc := NewViewerService(50*time.Millisecond, locationClient, renderer, zerolog.Nop())

	// Execute: first refresh succeeds, later ones fail
	err := svc.Start()
	assert.NoError(t, err)
	time.Sleep(175 * time.Millisecond)

	err = svc.Stop()
	assert.NoError(t, err)

	// Assert: rendered exactly once, marker untouched by the failures
	renderer.AssertNumberOfCalls(t, "Render", 1)
	assert.Equal(t, record, svc.LastRendered())
}

// TestViewerService_LastRenderedConcurrentRead tests that the marker can be
// read while the polling loop is writing it.
func TestViewerService_LastRenderedConcurrentRead(t *testing.T) {
	// Setup
	locationClient := new(mockLocationClient)
	renderer := new(mockRenderer)

	record := sampleRecord()
	locationClient.On("FetchLatest", mock.Anything).Return(record, nil)
	renderer.On("Render", record).Return(nil)

	svc := NewViewerService(10*time.Millisecond, locationClient, renderer, zerolog.Nop())

	// Execute: poll the marker while refreshes keep landing
	err := svc.Start()
	assert.NoError(t, err)

	deadline := time.Now().Add(100 * time.Millisecond)
	var seen *client.LocationRecord
	for time.Now().Before(deadline) {
		if r := svc.LastRendered(); r != nil {
			seen = r
		}
		time.Sleep(5 * time.Millisecond)
	}

	err = svc.Stop()
	assert.NoError(t, err)

	// Assert
	assert.Equal(t, record, seen)
}

// TestViewerService_RenderFailureDoesNotRecordMarker tests that a failed
// repaint does not advance the last rendered record.
func TestViewerService_RenderFailureDoesNotRecordMarker(t *testing.T) {
	// Setup
	locationClient := new(mockLocationClient)
	renderer := new(mockRenderer)

	locationClient.On("FetchLatest", mock.Anything).Return(sampleRecord(), nil)
	renderer.On("Render", mock.Anything).Return(errors.New("write failed"))

	svc := NewViewerService(time.Hour, locationClient, renderer, zerolog.Nop())

	// Execute
	err := svc.Start()
	assert.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	err = svc.Stop()
	assert.NoError(t, err)

	// Assert
	assert.Nil(t, svc.LastRendered())
}
