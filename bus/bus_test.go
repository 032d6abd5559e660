package bus

import "testing"

func TestFireInvokesInSubscriptionOrder(t *testing.T) {
	var b Bus[int]
	var order []int
	b.Listen(func(v int) { order = append(order, v*10+1) })
	b.Listen(func(v int) { order = append(order, v*10+2) })

	b.Fire(5)

	want := []int{51, 52}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestFirePropagatesPanic(t *testing.T) {
	var b Bus[int]
	b.Listen(func(int) { panic("boom") })

	defer func() {
		if recover() == nil {
			t.Fatal("expected Fire to propagate the listener's panic")
		}
	}()
	b.Fire(1)
}

func TestEventsIndependent(t *testing.T) {
	ev := New()
	fired := false
	ev.SignalLost.Listen(func(struct{}) { fired = true })
	ev.SignalGained.Fire(struct{}{})
	if fired {
		t.Fatal("firing SignalGained should not invoke SignalLost listeners")
	}
	ev.SignalLost.Fire(struct{}{})
	if !fired {
		t.Fatal("expected SignalLost listener to fire")
	}
}
