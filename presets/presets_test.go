package presets_test

import (
	"reflect"
	"testing"

	"github.com/shaperaudio/shaper"
	"github.com/shaperaudio/shaper/presets"
)

func TestPresetsLoad(t *testing.T) {
	for _, name := range presets.Names() {
		nodes, err := presets.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		for i := 1; i < len(nodes); i++ {
			if nodes[i-1].Phase >= nodes[i].Phase {
				t.Errorf("%s: nodes not sorted by phase: %v", name, nodes)
			}
		}
		w, err := shaper.NewWave(nodes...)
		if err != nil {
			t.Errorf("%s: invalid preset: %v", name, err)
			continue
		}
		if w.Len() != len(nodes) {
			t.Errorf("%s: wave has %d nodes, expected %d", name, w.Len(), len(nodes))
		}
	}
}

func TestSquare(t *testing.T) {
	w, err := shaper.NewWave(presets.Square()...)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([][2]float64, 256)
	w.Stream(samples)
	for i, s := range samples {
		want := 1.0
		if i >= len(samples)/2 {
			want = -1
		}
		if s[0] != want {
			t.Fatalf("sample %d is %v, expected %v", i, s[0], want)
		}
	}
}

func TestSine(t *testing.T) {
	if _, err := presets.Sine(2); err == nil {
		t.Fatal("Sine(2) should fail")
	}
	nodes, err := presets.Sine(4)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1, 0, -1}
	for i, n := range nodes {
		if d := n.Amplitude - want[i]; d > 1e-12 || d < -1e-12 {
			t.Errorf("node %d is %v, expected amplitude %v", i, n, want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	if _, err := presets.Lookup("noise"); err == nil {
		t.Fatal("Lookup of an unknown preset should fail")
	}
	got, err := presets.Lookup("triangle")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, presets.Triangle()) {
		t.Fatalf("Lookup(triangle) = %v", got)
	}
	want := []string{"sawtooth", "sawtooth-reversed", "sine", "square", "triangle"}
	if names := presets.Names(); !reflect.DeepEqual(names, want) {
		t.Fatalf("Names() = %v, expected %v", names, want)
	}
}
