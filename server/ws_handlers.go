package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-home-io/device-monitor/common"
	"github.com/gorilla/websocket"
)

// Property update pushed by the host.
type wsFrame struct {
	Path      string      `json:"p"`
	Value     interface{} `json:"v,omitempty"`
	Available *bool       `json:"a,omitempty"`
	Event     string      `json:"e,omitempty"`
}

// Handles WS upgrade request.
func (s *MonitorServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogURLToken, request.RemoteAddr)
		return
	}

	s.Logger.Debug("WS connection established", common.LogURLToken, request.RemoteAddr,
		logUserToken, userName(request))
	go s.processIncomingWSMessages(c, request.RemoteAddr)
}

// Processes incoming WS messages.
// Connection is closed once the host disconnects.
func (s *MonitorServer) processIncomingWSMessages(conn *websocket.Conn, remote string) {
	defer conn.Close() // nolint: errcheck
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			s.Logger.Debug("Closing WS connection", common.LogURLToken, remote)
			return
		}

		// Ping request comes as a un-wrapped string
		if "ping" == string(message) {
			conn.WriteMessage(mt, []byte("pong")) // nolint: gosec, errcheck
			continue
		}

		frame := &wsFrame{}
		if err := json.Unmarshal(message, frame); err != nil {
			s.Logger.Error("Failed to un-marshal WS frame", err, common.LogURLToken, remote)
			continue
		}

		s.applyFrame(frame)
	}
}

// Feeds property store with the frame.
func (s *MonitorServer) applyFrame(frame *wsFrame) {
	if "" == frame.Path {
		s.Logger.Warn("Received WS frame without property path")
		return
	}

	switch {
	case "" != frame.Event:
		s.store.Publish(frame.Path, frame.Event, frame.Value)
	case nil != frame.Available && !*frame.Available:
		s.store.SetAvailable(frame.Path, false)
	default:
		s.store.Set(frame.Path, frame.Value)
	}
}
