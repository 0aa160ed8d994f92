package events

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipePair(t *testing.T) (server, client net.Conn) {
	t.Helper()
	server, client = net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	return server, client
}

func TestHub_BroadcastJSON(t *testing.T) {
	h := NewHub()
	server, client := pipePair(t)
	h.Add(server)

	go h.BroadcastJSON(ImportEvent{
		Type: TypeGameCreated,
		Name: "Sample Quest",
		Slug: "sample-quest",
	})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := bufio.NewReader(client).ReadBytes('\n')
	require.NoError(t, err)

	var ev ImportEvent
	require.NoError(t, json.Unmarshal(line, &ev))
	assert.Equal(t, TypeGameCreated, ev.Type)
	assert.Equal(t, "sample-quest", ev.Slug)
}

func TestHub_DropsDeadConnections(t *testing.T) {
	h := NewHub()
	server, client := pipePair(t)
	h.Add(server)
	require.Equal(t, 1, h.Stats().TCPClients)

	_ = client.Close()
	_ = server.Close()

	h.BroadcastJSON(ImportEvent{Type: TypePopulateStarted})
	assert.Equal(t, 0, h.Stats().TCPClients)
}

func TestHub_RemoveAndStats(t *testing.T) {
	h := NewHub()
	server, _ := pipePair(t)
	h.Add(server)
	h.Remove(server)
	assert.Equal(t, 0, h.Stats().TCPClients)
	assert.Equal(t, 0, h.Stats().WSClients)
}
