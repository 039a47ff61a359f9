package tiling

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/blockfill/pkg/errors"
)

func TestTilingFileRoundTrip(t *testing.T) {
	s, err := NewSession(Config{Width: 16, Height: 9, MinBlock: 2, MaxBlock: 5, MaxSteps: 500, Seed: 8})
	if err != nil {
		t.Fatal(err)
	}
	want := s.Drain()

	path := filepath.Join(t.TempDir(), "tiling.json")
	if err := WriteTilingFile(want, path); err != nil {
		t.Fatalf("WriteTilingFile: %v", err)
	}
	got, err := ReadTilingFile(path)
	if err != nil {
		t.Fatalf("ReadTilingFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !got.Full() || got.Coverage() != 1 {
		t.Errorf("Coverage() = %v, want 1", got.Coverage())
	}
}

func TestMarshalTilingFields(t *testing.T) {
	s, _ := NewSession(Config{Width: 1, Height: 1, MinBlock: 1, MaxBlock: 1, MaxSteps: 5, Seed: 3})
	data, err := MarshalTiling(s.Drain())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"width": 1`, `"min_block": 1`, `"strategy": "grow"`, `"reason": "exhausted"`, `"rects"`, `"height": 1`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing %s:\n%s", key, data)
		}
	}
}

func TestUnmarshalTilingRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
		code errors.Code
	}{
		{"not json", `{`, errors.ErrCodeInvalidInput},
		{"bad config", `{"width":0,"height":3,"min_block":1,"max_block":1}`, errors.ErrCodeInvalidConfig},
		{"overlap", `{"width":3,"height":3,"min_block":1,"max_block":3,"rects":[
			{"id":0,"x":0,"y":0,"width":2,"height":2},
			{"id":1,"x":1,"y":1,"width":2,"height":2}]}`, errors.ErrCodeOverlap},
		{"out of bounds", `{"width":3,"height":3,"min_block":1,"max_block":3,"rects":[
			{"id":0,"x":2,"y":0,"width":2,"height":1}]}`, errors.ErrCodeOutOfBounds},
		{"cell count overflows", `{"width":4294967296,"height":4294967296,"min_block":1,"max_block":1,"rects":[
			{"id":0,"x":5,"y":5,"width":1,"height":1}]}`, errors.ErrCodeInvalidConfig},
		{"id gap", `{"width":3,"height":3,"min_block":1,"max_block":3,"rects":[
			{"id":1,"x":0,"y":0,"width":1,"height":1}]}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalTiling([]byte(tt.json))
			if !errors.Is(err, tt.code) {
				t.Errorf("UnmarshalTiling error = %v, want %s", err, tt.code)
			}
		})
	}
}
