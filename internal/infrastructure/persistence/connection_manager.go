package persistence

import (
	"context"
	"sync"

	"travelgate-service/pkg/logger"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConnState is the driver-reported side of the readiness signal
type ConnState string

const (
	StateDisconnected  ConnState = "disconnected"
	StateConnecting    ConnState = "connecting"
	StateConnected     ConnState = "connected"
	StateDisconnecting ConnState = "disconnecting"
)

// ConnectionManager owns the lifecycle of the primary-store connection. It
// tracks two signals that can diverge: a local "connected" flag set by
// Connect/Disconnect, and a driver state driven asynchronously by server
// heartbeat events. IsReady requires both, because the local flag lags the
// driver during an unplanned disconnect.
type ConnectionManager struct {
	cfg ClientConfig
	log logger.Logger

	mu          sync.Mutex
	client      *mongo.Client
	connected   bool
	driverState ConnState
}

// NewConnectionManager creates a manager in the disconnected state
func NewConnectionManager(cfg ClientConfig, log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		cfg:         cfg,
		log:         log,
		driverState: StateDisconnected,
	}
}

// Connect attempts a single bounded handshake. Failure is reported as false
// rather than an error so the caller can pick a fallback strategy; no retry
// is attempted here.
func (m *ConnectionManager) Connect(ctx context.Context) bool {
	m.mu.Lock()
	m.driverState = StateConnecting
	m.mu.Unlock()

	client, err := newMongoClient(ctx, m.cfg, &clientMonitor{manager: m})
	if err != nil {
		m.log.Warn("Primary store unreachable", "uri", m.cfg.URI, "error", err)
		m.mu.Lock()
		m.connected = false
		m.driverState = StateDisconnected
		m.mu.Unlock()
		return false
	}

	m.mu.Lock()
	m.client = client
	m.connected = true
	m.driverState = StateConnected
	m.mu.Unlock()

	m.log.Info("Connected to primary store", "database", m.cfg.Database)
	return true
}

// Disconnect is best-effort teardown; errors are swallowed
func (m *ConnectionManager) Disconnect(ctx context.Context) {
	m.mu.Lock()
	client := m.client
	m.driverState = StateDisconnecting
	m.mu.Unlock()

	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			m.log.Warn("Error during disconnect", "error", err)
		}
	}

	m.mu.Lock()
	m.connected = false
	m.driverState = StateDisconnected
	m.mu.Unlock()
}

// IsReady reports true iff the local flag and the driver state agree the
// connection is usable
func (m *ConnectionManager) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected && m.driverState == StateConnected
}

// ConnectionState is a pure read of the driver-reported state, independent
// of the local flag, for diagnostics
func (m *ConnectionManager) ConnectionState() ConnState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.driverState
}

// Database returns the configured database handle, or nil before a
// successful Connect
func (m *ConnectionManager) Database() *mongo.Database {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	return m.client.Database(m.cfg.Database)
}

// onHeartbeatSucceeded marks the driver state connected again after a
// reconnect event
func (m *ConnectionManager) onHeartbeatSucceeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.driverState == StateDisconnecting {
		return
	}
	m.driverState = StateConnected
}

// onHeartbeatFailed marks the driver state disconnected. The local flag is
// left alone: it is updated only by Connect/Disconnect, which is exactly
// the divergence IsReady's conjunction exists for.
func (m *ConnectionManager) onHeartbeatFailed(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.driverState == StateConnected {
		m.log.Warn("Primary store heartbeat failed", "error", err)
	}
	m.driverState = StateDisconnected
}

// clientMonitor adapts driver heartbeat callbacks onto the manager's state
// machine
type clientMonitor struct {
	manager *ConnectionManager
}

func (c *clientMonitor) serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatSucceeded: func(e *event.ServerHeartbeatSucceededEvent) {
			c.manager.onHeartbeatSucceeded()
		},
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			c.manager.onHeartbeatFailed(e.Failure)
		},
	}
}
