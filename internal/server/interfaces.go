package server

// Server is the lifecycle every transport started by this package follows:
// serve until told to stop, then let go of whatever was held open.
type Server interface {
	// RunServer begins accepting requests and does not return until the
	// server has stopped.
	RunServer()

	// Shutdown stops the server gracefully, draining in-flight requests.
	Shutdown()
}
