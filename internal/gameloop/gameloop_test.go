package gameloop

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/observer"
	"github.com/rcaelers/swoqbot/internal/transport"
)

// fakeClient plays back a fixed sequence of act responses, ending the
// game once it runs out.
type fakeClient struct {
	startResp transport.StartResponse
	actResps  []transport.ActResponse
	next      int
	closed    bool
}

func (f *fakeClient) Start(ctx context.Context, req transport.StartRequest) (transport.StartResponse, error) {
	return f.startResp, nil
}

func (f *fakeClient) Act(ctx context.Context, gameID string, action model.Action, action2 *model.Action) (transport.ActResponse, error) {
	resp := f.actResps[f.next]
	if f.next < len(f.actResps)-1 {
		f.next++
	}
	return resp, nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func singlePlayerState(tick int, status string) transport.WireState {
	return transport.WireState{
		Tick:   tick,
		Level:  1,
		Status: status,
		Players: []transport.WirePlayer{
			{X: 0, Y: 0, Health: 10, IsActive: true, Surroundings: make([]int, 9)},
		},
	}
}

func TestRunDrivesGameToFinishedStatus(t *testing.T) {
	client := &fakeClient{
		startResp: transport.StartResponse{
			Result: "Ok", GameID: "g1", MapWidth: 5, MapHeight: 5, VisibilityRange: 1,
			State: singlePlayerState(0, "Active"),
		},
		actResps: []transport.ActResponse{
			{Result: "Ok", State: singlePlayerState(1, "Active")},
			{Result: "Ok", State: singlePlayerState(2, "FinishedSuccess")},
		},
	}

	stats := observer.NewStatsObserver()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := Run(context.Background(), client, Request{UserID: "u1", UserName: "bot"}, stats, log)
	if err != nil {
		t.Fatalf("Run() err = %v, want nil", err)
	}
	if stats.LastStatus != "FinishedSuccess" {
		t.Errorf("LastStatus = %q, want FinishedSuccess", stats.LastStatus)
	}
	if stats.Ticks == 0 {
		t.Error("Ticks = 0, want at least one state update recorded")
	}
}

func TestRunEndsGameOnActionRejectionWithoutError(t *testing.T) {
	client := &fakeClient{
		startResp: transport.StartResponse{
			Result: "Ok", GameID: "g1", MapWidth: 5, MapHeight: 5, VisibilityRange: 1,
			State: singlePlayerState(0, "Active"),
		},
		actResps: []transport.ActResponse{
			{Result: "InvalidMove", State: singlePlayerState(1, "Active")},
		},
	}

	stats := observer.NewStatsObserver()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := Run(context.Background(), client, Request{UserID: "u1", UserName: "bot"}, stats, log)
	if err != nil {
		t.Fatalf("Run() err = %v, want nil on action rejection", err)
	}
	if stats.Rejections != 1 {
		t.Errorf("Rejections = %d, want 1", stats.Rejections)
	}
}
