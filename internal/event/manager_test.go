package event

import "testing"

func TestDispatchRunsHandlersInOrder(t *testing.T) {
	m := NewManager()
	var calls []int
	m.Subscribe(TypeBufferModified, func(e Event) bool {
		calls = append(calls, 1)
		return false
	})
	m.Subscribe(TypeBufferModified, func(e Event) bool {
		calls = append(calls, 2)
		return false
	})

	if consumed := m.Dispatch(TypeBufferModified, nil); consumed {
		t.Error("Dispatch reported consumed with pass-through handlers")
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("calls = %v, want [1 2]", calls)
	}
}

func TestDispatchStopsOnConsume(t *testing.T) {
	m := NewManager()
	var secondRan bool
	m.Subscribe(TypeKeyPressed, func(e Event) bool { return true })
	m.Subscribe(TypeKeyPressed, func(e Event) bool {
		secondRan = true
		return false
	})

	if consumed := m.Dispatch(TypeKeyPressed, nil); !consumed {
		t.Error("Dispatch should report the event as consumed")
	}
	if secondRan {
		t.Error("handler after the consumer should not run")
	}
}

func TestDispatchNoHandlers(t *testing.T) {
	m := NewManager()
	if consumed := m.Dispatch(TypeAppReady, AppReadyData{}); consumed {
		t.Error("Dispatch with no handlers should report not consumed")
	}
}

func TestDispatchDeliversTypedData(t *testing.T) {
	m := NewManager()
	var got string
	m.Subscribe(TypeFileCreated, func(e Event) bool {
		if data, ok := e.Data.(FileCreatedData); ok {
			got = data.Path
		}
		return false
	})

	m.Dispatch(TypeFileCreated, FileCreatedData{Path: "/notes/a.md"})
	if got != "/notes/a.md" {
		t.Errorf("handler saw path %q, want %q", got, "/notes/a.md")
	}
}
