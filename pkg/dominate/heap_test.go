package dominate

import "testing"

func TestLazyQueueOrdering(t *testing.T) {
	q := newLazyQueue()
	q.push(1, 2, 1.0)
	q.push(2, 5, 1.0)
	q.push(3, 5, 3.0)
	q.push(4, 5, 3.0)

	// Utility first, then weight, then ascending ID.
	want := []struct {
		dmr     int
		utility int
	}{
		{3, 5},
		{4, 5},
		{2, 5},
		{1, 2},
	}
	for i, w := range want {
		c, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: queue exhausted", i)
		}
		if int(c.dmr) != w.dmr || c.utility != w.utility {
			t.Errorf("pop %d = (%d, %d), want (%d, %d)", i, c.dmr, c.utility, w.dmr, w.utility)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("pop on empty queue returned a candidate")
	}
}

func TestLazyQueueStaleRequeue(t *testing.T) {
	q := newLazyQueue()
	q.push(1, 5, 1.0)
	q.push(2, 3, 1.0)

	// DMR 1 drops below DMR 2 after an update; the stale entry must be
	// re-queued at the valid value, not accepted at 5.
	q.update(1, 2)

	c, ok := q.pop()
	if !ok || c.dmr != 2 {
		t.Fatalf("pop = (%v, %v), want DMR 2 first", c, ok)
	}
	c, ok = q.pop()
	if !ok || c.dmr != 1 || c.utility != 2 {
		t.Fatalf("pop = (%+v, %v), want DMR 1 at utility 2", c, ok)
	}
}

func TestLazyQueueZeroUtilityExcluded(t *testing.T) {
	q := newLazyQueue()
	q.push(1, 0, 1.0)
	q.push(2, 4, 1.0)
	q.update(2, 0)

	if _, ok := q.pop(); ok {
		t.Error("pop returned a zero-utility candidate")
	}
}
