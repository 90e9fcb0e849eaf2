package events

import (
	"context"
	"testing"

	"github.com/janboddez/scrobbble-addon/internal/listens"
)

func TestBus(t *testing.T) {
	bus := NewBus()

	var first, second []int64
	bus.SubscribeListenSaved(func(ctx context.Context, ev ListenSaved) {
		first = append(first, ev.ListenID)
	})
	bus.SubscribeListenSaved(func(ctx context.Context, ev ListenSaved) {
		second = append(second, ev.ListenID)
	})

	ev := ListenSaved{
		ListenID: 7,
		Track:    listens.Track{Title: "Dreams", Artist: "Fleetwood Mac"},
	}
	bus.PublishListenSaved(context.Background(), ev)
	bus.PublishListenSaved(context.Background(), ListenSaved{ListenID: 8})

	if len(first) != 2 || first[0] != 7 || first[1] != 8 {
		t.Errorf("first handler saw %v, want [7 8]", first)
	}
	if len(second) != 2 || second[0] != 7 || second[1] != 8 {
		t.Errorf("second handler saw %v, want [7 8]", second)
	}
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()

	// Publishing into the void must not panic.
	bus.PublishListenSaved(context.Background(), ListenSaved{ListenID: 1})
}

func TestBus_EventCarriesTrack(t *testing.T) {
	bus := NewBus()

	var got listens.Track
	bus.SubscribeListenSaved(func(ctx context.Context, ev ListenSaved) {
		got = ev.Track
	})

	want := listens.Track{Title: "Heroes", Artist: "David Bowie", Album: "Heroes", MBID: "rec-1"}
	bus.PublishListenSaved(context.Background(), ListenSaved{ListenID: 3, Track: want})

	if got != want {
		t.Errorf("handler received %+v, want %+v", got, want)
	}
}
