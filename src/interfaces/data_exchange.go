package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing data with connected clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// -----------------------------------------------------------------------------

	// Broadcast pushes a snapshot to all connected websocket clients.
	Broadcast(snapshot *models.MDashboardSnapshot)

	// -----------------------------------------------------------------------------

	// UpdateSnapshot replaces the internal state without broadcasting.
	UpdateSnapshot(snapshot *models.MDashboardSnapshot)

	// -----------------------------------------------------------------------------

	// Start the server
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully
	Stop() error
}
