package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "scene.toml")
	p.OnLoadComplete(ctx, "scene.toml", 4, time.Second, nil)
	p.OnLayoutStart(ctx, 4)
	p.OnLayoutComplete(ctx, 2, 3, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &countingPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &countingCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &countingPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	hooks := &countingCacheHooks{}
	SetCacheHooks(hooks)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				Cache().OnCacheHit(context.Background(), "layout")
			}
		}()
	}
	wg.Wait()

	if got := hooks.hits(); got != 800 {
		t.Errorf("hits = %d, want 800", got)
	}
}

type countingPipelineHooks struct{ NoopPipelineHooks }

type countingCacheHooks struct {
	NoopCacheHooks
	mu sync.Mutex
	n  int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.n++
	h.mu.Unlock()
}

func (h *countingCacheHooks) hits() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
