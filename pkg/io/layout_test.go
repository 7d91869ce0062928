package io

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/layout"
)

func sampleResult(t *testing.T) layout.Result {
	t.Helper()
	g, err := ReadText(strings.NewReader("a\nb\nc\na b 2\nb c\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	e := layout.New(g, layout.WithSeed(42))
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	return e.Result()
}

func TestWriteReadLayout(t *testing.T) {
	res := sampleResult(t)

	var buf bytes.Buffer
	if err := WriteLayout(res, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	if !strings.Contains(buf.String(), `"max_radius"`) {
		t.Errorf("output missing max_radius field:\n%s", buf.String())
	}

	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if got.ID != res.ID || len(got.Nodes) != 3 || len(got.Edges) != 2 {
		t.Errorf("ReadLayout() = %+v", got)
	}
	if got.Nodes[0] != res.Nodes[0] {
		t.Errorf("node = %+v, want %+v", got.Nodes[0], res.Nodes[0])
	}
	if got.Edges[0].Weight != 2 {
		t.Errorf("edge weight = %v, want 2", got.Edges[0].Weight)
	}
}

func TestLayoutFile(t *testing.T) {
	res := sampleResult(t)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(res, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.MaxRadius != res.MaxRadius {
		t.Errorf("MaxRadius = %v, want %v", got.MaxRadius, res.MaxRadius)
	}
}

func TestReadLayoutFileNotFound(t *testing.T) {
	if _, err := ReadLayoutFile("/nonexistent/layout.json"); err == nil {
		t.Error("expected error")
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"Malformed", `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"UnknownNode", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, errors.ErrCodeUnknownEndpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %v", err, tt.code)
			}
		})
	}
}
