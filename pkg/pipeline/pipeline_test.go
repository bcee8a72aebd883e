package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"txt", false},
		{"graphviz", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidArgument)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "txt"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" svg, TXT,,svg,dot ")
	if err != nil {
		t.Fatalf("ParseFormats: %v", err)
	}
	if want := []string{"svg", "txt", "dot"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFormats() = %v, want %v", got, want)
	}

	if _, err := ParseFormats("svg,gif"); err == nil {
		t.Error("ParseFormats(gif) should fail")
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatSVG:      ".svg",
		FormatText:     ".txt",
		FormatJSON:     ".layout.json",
		FormatGraphviz: ".graphviz.svg",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("ValidateAndSetDefaults() without a scene = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}

	opts = Options{Document: scene.DemoDocument()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if opts.Source() != "demo" {
		t.Errorf("Source() = %q, want demo", opts.Source())
	}

	bad := Options{Scene: "x.toml", Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() accepted an unknown format")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Scale: 10}
	b := Options{Scale: 20, NoFrames: true}

	if a.ArtifactKeyOpts(FormatSVG) == b.ArtifactKeyOpts(FormatSVG) {
		t.Error("svg key options ignore scale and frames")
	}
	if a.ArtifactKeyOpts(FormatText) != b.ArtifactKeyOpts(FormatText) {
		t.Error("txt key options depend on svg settings")
	}
	if !a.LayoutKeyOpts().Steps || (&Options{SkipSteps: true}).LayoutKeyOpts().Steps {
		t.Error("LayoutKeyOpts().Steps does not follow SkipSteps")
	}
}
