package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler streams the events of one farm. The address query parameter is
// required; types optionally narrows the stream to a comma-separated list.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get(QueryParamAddress)
		if address == "" {
			http.Error(w, "address is required", http.StatusBadRequest)
			return
		}

		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			for _, t := range strings.Split(filterParam, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		rc := http.NewResponseController(w)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			slog.Error(ErrMsgStreamingUnsupported, "error", err)
			return
		}

		client := hub.Register(address, eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"address", address,
			"filters", eventTypes)

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "address", address)
		}()

		send := func(evt Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				slog.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return rc.Flush() == nil
		}

		if !send(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Address:   address,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, Address: address, Types: eventTypes},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-client.EventChannel:
				if !ok {
					// hub stopped
					return
				}
				if !send(evt) {
					return
				}

			case <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
