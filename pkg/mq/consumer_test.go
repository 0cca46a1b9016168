package mq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
)

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
	err     error
}

func (a *fakeAck) Ack(bool) error {
	a.acked = true
	return a.err
}

func (a *fakeAck) Nack(_ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return a.err
}

type recordingHandler struct {
	events []*VideoEvent
	err    error
}

func (h *recordingHandler) HandleVideoEvent(_ context.Context, event *VideoEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func TestHandleDelivery(t *testing.T) {
	event := NewVideoEvent(VideoPublished, "u1", &model.Video{ID: "v1", OwnerID: "u1", Title: "Go", IsPublished: true})
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("ack on success", func(t *testing.T) {
		h := &recordingHandler{}
		ack := &fakeAck{}
		handleDelivery(context.Background(), h, body, ack)
		if !ack.acked || ack.nacked {
			t.Fatalf("expected ack, got %+v", ack)
		}
		if len(h.events) != 1 || h.events[0].Video.ID != "v1" || h.events[0].Type != VideoPublished {
			t.Fatalf("unexpected events %+v", h.events)
		}
	})

	t.Run("requeue on handler failure", func(t *testing.T) {
		ack := &fakeAck{}
		handleDelivery(context.Background(), &recordingHandler{err: errors.New("es down")}, body, ack)
		if !ack.nacked || !ack.requeue {
			t.Fatalf("expected requeue, got %+v", ack)
		}
	})

	t.Run("drop malformed payload", func(t *testing.T) {
		h := &recordingHandler{}
		ack := &fakeAck{}
		handleDelivery(context.Background(), h, []byte(`{"type":"video.published"}`), ack)
		if !ack.nacked || ack.requeue {
			t.Fatalf("expected drop, got %+v", ack)
		}
		if len(h.events) != 0 {
			t.Fatal("handler must not see malformed events")
		}
	})
}

func TestHandleDeliveryLogsAckFailures(t *testing.T) {
	var logs bytes.Buffer
	hlog.SetOutput(&logs)
	defer hlog.SetOutput(os.Stderr)

	event := NewVideoEvent(VideoDeleted, "u1", &model.Video{ID: "v2", OwnerID: "u1"})
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatal(err)
	}
	closed := errors.New("channel/connection is not open")

	tests := []struct {
		name    string
		body    []byte
		handler *recordingHandler
		wantLog string
	}{
		{name: "ack", body: body, handler: &recordingHandler{}, wantLog: "Failed to ack video event " + event.EventID},
		{name: "requeue", body: body, handler: &recordingHandler{err: errors.New("es down")}, wantLog: "Failed to requeue video event " + event.EventID},
		{name: "drop", body: []byte(`not json`), handler: &recordingHandler{}, wantLog: "Failed to nack malformed video event"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			handleDelivery(context.Background(), tt.handler, tt.body, &fakeAck{err: closed})
			if !strings.Contains(logs.String(), tt.wantLog) {
				t.Fatalf("expected log %q, got %q", tt.wantLog, logs.String())
			}
			if !strings.Contains(logs.String(), closed.Error()) {
				t.Fatalf("expected the ack error in the log, got %q", logs.String())
			}
		})
	}

	logs.Reset()
	handleDelivery(context.Background(), &recordingHandler{}, body, &fakeAck{err: closed})
	if strings.Contains(logs.String(), "Successfully processed") {
		t.Fatal("a failed ack must not be reported as processed")
	}
}
