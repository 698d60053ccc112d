package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	dErrors "chimera/pkg/domain-errors"
	"chimera/pkg/platform/httputil"
	"chimera/pkg/requestcontext"
)

const streamBuffer = 64

// HandleEvents handles GET /presentations/{id}/events as a Server-Sent Events
// stream. The first record is a snapshot taken when the subscription was
// registered; transitions and frames with later sequence numbers follow until
// the client leaves or the presentation is deleted.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx, pid, ok := h.parseID(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "streaming unsupported"))
		return
	}

	p, events, cancel, err := h.service.Subscribe(ctx, pid, streamBuffer)
	if err != nil {
		h.logFailure(ctx, "subscribe", err)
		httputil.WriteError(w, err)
		return
	}
	defer cancel()

	h.metrics.IncrementStreams()
	defer h.metrics.DecrementStreams()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, strconv.FormatUint(p.Seq, 10), "snapshot", FromPresentation(p)); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				_ = writeSSE(w, "", "closed", map[string]string{"id": pid.String()})
				flusher.Flush()
				return
			}
			if err := writeSSE(w, strconv.FormatUint(ev.Seq, 10), string(ev.Kind), ev); err != nil {
				h.logger.DebugContext(ctx, "event stream write failed",
					"request_id", requestcontext.RequestID(ctx),
					"presentation_id", pid.String(),
					"error", err,
				)
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, eventID, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if eventID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", eventID); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

