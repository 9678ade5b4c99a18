package persistence

import (
	"errors"
	"testing"
	"time"

	"travelgate-service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestManager() *ConnectionManager {
	return NewConnectionManager(ClientConfig{
		URI:      "mongodb://localhost:27017",
		Database: "travelgate_test",
		PoolSize: 5,
		Timeout:  time.Second,
	}, logger.NewNop())
}

func TestConnectionManager_NotReadyBeforeConnect(t *testing.T) {
	m := newTestManager()

	assert.False(t, m.IsReady())
	assert.Equal(t, StateDisconnected, m.ConnectionState())

	// Even a driver-level "connected" event alone must not make the
	// manager ready: the local flag is still unset.
	m.onHeartbeatSucceeded()
	assert.False(t, m.IsReady())
	assert.Equal(t, StateConnected, m.ConnectionState())
}

func TestConnectionManager_HeartbeatFailureFlipsDriverState(t *testing.T) {
	m := newTestManager()

	// Simulate the state after a successful Connect
	m.connected = true
	m.driverState = StateConnected
	assert.True(t, m.IsReady())

	m.onHeartbeatFailed(errors.New("no reachable servers"))

	assert.False(t, m.IsReady(), "driver disconnect must make IsReady false even while the local flag lags")
	assert.Equal(t, StateDisconnected, m.ConnectionState())
	assert.True(t, m.connected, "local flag is owned by Connect/Disconnect, not heartbeat events")
}

func TestConnectionManager_ReconnectEventRestoresReadiness(t *testing.T) {
	m := newTestManager()
	m.connected = true
	m.driverState = StateConnected

	m.onHeartbeatFailed(errors.New("transient fault"))
	assert.False(t, m.IsReady())

	m.onHeartbeatSucceeded()
	assert.True(t, m.IsReady())
}

func TestConnectionManager_HeartbeatIgnoredWhileDisconnecting(t *testing.T) {
	m := newTestManager()
	m.driverState = StateDisconnecting

	m.onHeartbeatSucceeded()
	assert.Equal(t, StateDisconnecting, m.ConnectionState())
}

func TestConnectionManager_DatabaseNilBeforeConnect(t *testing.T) {
	m := newTestManager()
	assert.Nil(t, m.Database())
}
