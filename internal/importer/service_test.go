package importer

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/fortuna/courtside/internal/projections"
)

func poolService() *Service {
	return &Service{
		players: projections.NewStore(),
		logger:  log.New(io.Discard, "", 0),
	}
}

func TestReloadPoolReplacesAndNotifies(t *testing.T) {
	s := poolService()

	notified := false
	s.OnReload = func() { notified = true }

	players := []*projections.PlayerStat{{Name: "Cade Cunningham"}, {Name: "Evan Mobley"}}
	if err := s.reloadPool(players); err != nil {
		t.Fatalf("reloadPool: %v", err)
	}

	if s.players.Len() != 2 {
		t.Fatalf("pool has %d players after reload, want 2", s.players.Len())
	}
	if !notified {
		t.Error("OnReload not invoked after pool replacement")
	}
	if p, ok := s.players.Resolve("Evan Mobley"); !ok || p.ID == 0 {
		t.Errorf("reloaded player missing or without ID: %v", p)
	}
}

func TestReloadPoolRefusedWhileDraftHoldsPicks(t *testing.T) {
	s := poolService()
	s.players.Load([]*projections.PlayerStat{{Name: "Incumbent Player"}})

	s.ReloadGuard = func() error { return errors.New("draft in progress with 4 recorded picks") }
	notified := false
	s.OnReload = func() { notified = true }

	err := s.reloadPool([]*projections.PlayerStat{{Name: "Newcomer One"}, {Name: "Newcomer Two"}})
	if err == nil {
		t.Fatal("reloadPool succeeded against an objecting guard")
	}

	if s.players.Len() != 1 {
		t.Errorf("pool has %d players, want 1 (reload must not shift IDs under picks)", s.players.Len())
	}
	if _, ok := s.players.Resolve("Incumbent Player"); !ok {
		t.Error("incumbent pool replaced despite refused reload")
	}
	if notified {
		t.Error("OnReload invoked for a refused reload")
	}
}
