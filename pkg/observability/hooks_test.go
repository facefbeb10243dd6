package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	d := NoopDrawHooks{}
	d.OnExtract(ctx, 3, 1, 3, time.Millisecond, nil)
	d.OnLayout(ctx, 1, 5, 3, time.Millisecond)
	d.OnRefresh(ctx, 2, true)

	r := NoopRenderHooks{}
	r.OnRender(ctx, "svg", 1024, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Draw().(NoopDrawHooks); !ok {
		t.Error("Draw() should return NoopDrawHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	// Set custom hooks
	customDraw := &testDrawHooks{}
	SetDrawHooks(customDraw)
	if Draw() != customDraw {
		t.Error("SetDrawHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Draw().(NoopDrawHooks); !ok {
		t.Error("Reset() should restore NoopDrawHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDrawHooks{}
	SetDrawHooks(custom)

	// Setting nil should be ignored
	SetDrawHooks(nil)

	if Draw() != custom {
		t.Error("SetDrawHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testDrawHooks struct{ NoopDrawHooks }
type testRenderHooks struct{ NoopRenderHooks }

type countingDrawHooks struct {
	NoopDrawHooks
	extracts, layouts, refreshes int
}

func (c *countingDrawHooks) OnExtract(context.Context, int64, int64, int, time.Duration, error) {
	c.extracts++
}
func (c *countingDrawHooks) OnLayout(context.Context, int64, int, int, time.Duration) { c.layouts++ }
func (c *countingDrawHooks) OnRefresh(context.Context, int, bool)                      { c.refreshes++ }

type countingRenderHooks struct{ renders int }

func (c *countingRenderHooks) OnRender(context.Context, string, int, time.Duration, error) {
	c.renders++
}

func TestTee(t *testing.T) {
	ctx := context.Background()
	a, b := &countingDrawHooks{}, &countingDrawHooks{}
	d := TeeDraw(a, b)
	d.OnExtract(ctx, 1, 1, 1, 0, nil)
	d.OnLayout(ctx, 1, 0, 1, 0)
	d.OnRefresh(ctx, 0, false)
	for i, c := range []*countingDrawHooks{a, b} {
		if c.extracts != 1 || c.layouts != 1 || c.refreshes != 1 {
			t.Errorf("hooks[%d] = %+v, want one of each", i, *c)
		}
	}

	r1, r2 := &countingRenderHooks{}, &countingRenderHooks{}
	TeeRender(r1, r2).OnRender(ctx, "svg", 10, 0, nil)
	if r1.renders != 1 || r2.renders != 1 {
		t.Errorf("renders = %d, %d, want 1, 1", r1.renders, r2.renders)
	}
}
