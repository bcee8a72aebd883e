package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapestack/pkg/cache"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/observability"
	"github.com/matzehuels/shapestack/pkg/scene"
)

// sampleScene places a rectangle and a triangle side by side and a circle
// overlapping the rectangle. Its one step moves the circle clear of both.
const sampleScene = `
name = "sample"

[[shapes]]
id = "base"
kind = "rectangle"
center = { x = 0, y = 0 }
width = 4
height = 2

[[shapes]]
id = "tri"
kind = "triangle"
points = [{ x = 3, y = 0 }, { x = 4, y = 1 }, { x = 3, y = 2 }]

[[shapes]]
id = "dot"
kind = "circle"
center = { x = 0.5, y = 0 }
radius = 1

[[steps]]
op = "move_by"
target = "dot"
dx = 10
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestExecute(t *testing.T) {
	path := writeScene(t, sampleScene)
	r := quietRunner(nil)

	res, err := r.Execute(context.Background(), Options{Scene: path, Formats: []string{FormatText, FormatSVG, FormatDOT, FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got, want := string(res.Artifacts[FormatText]), "Layer 0 : Rectangle Triangle Circle \n"; got != want {
		t.Errorf("txt = %q, want %q", got, want)
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not an svg document")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph layout {") {
		t.Error("dot artifact is not a digraph")
	}
	l, err := layout.Unmarshal(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if l.ID != res.Layout.ID || l.Name != "sample" {
		t.Errorf("json artifact = %s %q, want %s sample", l.ID, l.Name, res.Layout.ID)
	}

	if res.Stats.ShapeCount != 3 || res.Stats.Rows != 1 || res.Stats.Columns != 3 {
		t.Errorf("Stats = %+v, want 3 shapes in 1x3", res.Stats)
	}
	if res.SceneHash == "" {
		t.Error("SceneHash is empty")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v with a null cache", res.CacheInfo)
	}
}

func TestExecuteSkipSteps(t *testing.T) {
	path := writeScene(t, sampleScene)
	res, err := quietRunner(nil).Execute(context.Background(), Options{Scene: path, SkipSteps: true, Formats: []string{FormatText}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got, want := string(res.Artifacts[FormatText]), "Layer 0 : Rectangle Triangle \nLayer 1 : Circle \n"; got != want {
		t.Errorf("txt = %q, want %q", got, want)
	}
	if len(res.Scene.Steps) != 1 {
		t.Errorf("len(Scene.Steps) = %d, want the step left unapplied", len(res.Scene.Steps))
	}
}

func TestExecuteCachesLayoutAndArtifacts(t *testing.T) {
	path := writeScene(t, sampleScene)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	ctx := context.Background()
	opts := Options{Scene: path, Formats: []string{FormatSVG, FormatText}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if second.Layout.ID != first.Layout.ID || second.Layout.Name != "sample" {
		t.Errorf("cached layout = %s %q, want %s sample", second.Layout.ID, second.Layout.Name, first.Layout.ID)
	}
	if string(second.Artifacts[FormatText]) != string(first.Artifacts[FormatText]) {
		t.Error("cached txt artifact differs")
	}

	refresh := opts
	refresh.Refresh = true
	third, err := r.Execute(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}

	skip := opts
	skip.SkipSteps = true
	fourth, err := r.Execute(ctx, skip)
	if err != nil {
		t.Fatalf("skip-steps Execute: %v", err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("skip-steps run reused the layout of the stepped scene")
	}
	if fourth.Layout.ID == first.Layout.ID {
		t.Error("skip-steps layout has the same id as the stepped layout")
	}
}

func TestExecuteDocument(t *testing.T) {
	res, err := quietRunner(nil).Execute(context.Background(), Options{Document: scene.DemoDocument(), Formats: []string{FormatText}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Scene.Name != "demo" || res.Stats.ShapeCount != 4 {
		t.Errorf("scene = %q with %d shapes, want demo with 4", res.Scene.Name, res.Stats.ShapeCount)
	}
	rect, ok := res.Scene.Lookup("rectangle-1")
	if !ok {
		t.Fatal("rectangle-1 missing")
	}
	if p, _ := rect.Position(); p != (geom.Point{X: 100, Y: 100}) {
		t.Errorf("rectangle-1 at %v, want (100, 100)", p)
	}
	if len(res.Artifacts[FormatText]) == 0 {
		t.Error("empty txt artifact")
	}
}

func TestExecuteErrors(t *testing.T) {
	failing := `
[[shapes]]
kind = "circle"
radius = 1

[[shapes]]
kind = "composite"

[[steps]]
op = "scale"
factor = 2
`
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no scene", Options{}, errors.ErrCodeInvalidArgument},
		{"bad format", Options{Scene: "x.toml", Formats: []string{"gif"}}, errors.ErrCodeInvalidArgument},
		{"missing file", Options{Scene: filepath.Join(t.TempDir(), "missing.toml")}, errors.ErrCodeFileNotFound},
		{"bad document", Options{Scene: writeScene(t, "shapes = [")}, errors.ErrCodeInvalidFormat},
		{"failing step", Options{Scene: writeScene(t, failing)}, errors.ErrCodeInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderLayout(t *testing.T) {
	sc, err := scene.Build(&scene.Document{Shapes: []scene.ShapeSpec{{ID: "c", Kind: "circle", Radius: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	l, err := quietRunner(nil).ComputeLayout(context.Background(), sc, "", Options{})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}

	out, err := RenderLayout(context.Background(), l, Options{Formats: []string{FormatText}})
	if err != nil {
		t.Fatalf("RenderLayout: %v", err)
	}
	if got := string(out[FormatText]); got != "Layer 0 : Circle \n" {
		t.Errorf("txt = %q", got)
	}

	if _, err := RenderLayout(context.Background(), l, Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("RenderLayout(gif) error = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}
	if _, err := RenderLayout(context.Background(), nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("RenderLayout(nil) error = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	events []string
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, shapes int, _ time.Duration, err error) {
	h.events = append(h.events, "load")
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, rows, cols int, _ time.Duration, err error) {
	h.events = append(h.events, "layout")
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "render")
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.events = append(h.events, "hit:"+keyType)
}

func (h *recordingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.events = append(h.events, "set:"+keyType)
}

func TestExecuteEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	opts := Options{Scene: writeScene(t, sampleScene), Formats: []string{FormatText}}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	want := "load set:layout layout set:artifact render"
	if got := strings.Join(h.events, " "); got != want {
		t.Errorf("first run events = %q, want %q", got, want)
	}

	h.events = nil
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	want = "load hit:layout layout hit:artifact render"
	if got := strings.Join(h.events, " "); got != want {
		t.Errorf("second run events = %q, want %q", got, want)
	}
}
