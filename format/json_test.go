package format

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/goccy/go-json"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/gfx"
	"github.com/gogpu/sketch/store"
)

func exportToMap(t *testing.T, d *sketch.Drawing) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if err := ExportJSON(&buf, d); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	return doc
}

func firstObjects(t *testing.T, doc map[string]any) []any {
	t.Helper()
	layers, ok := doc["layers"].([]any)
	if !ok || len(layers) == 0 {
		t.Fatalf("layers = %v", doc["layers"])
	}
	layer := layers[0].(map[string]any)
	return layer["objects"].([]any)
}

func TestExportJSONDocumentShape(t *testing.T) {
	d := sketch.NewDrawing(800, 600)
	d.SetBackground(gfx.RGB(240, 240, 240))
	d.AddCircle(100, 100, 50)

	doc := exportToMap(t, d)
	if doc["width"].(float64) != 800 || doc["height"].(float64) != 600 {
		t.Errorf("size = %v x %v", doc["width"], doc["height"])
	}
	if doc["background_color"] != "#f0f0f0ff" {
		t.Errorf("background_color = %v", doc["background_color"])
	}

	layers := doc["layers"].([]any)
	layer := layers[0].(map[string]any)
	if layer["name"] != "Default" || layer["visible"] != true || layer["z_index"].(float64) != 0 {
		t.Errorf("layer = %v", layer)
	}
}

func TestExportJSONCircle(t *testing.T) {
	d := sketch.NewDrawing(800, 600)
	id := d.AddCircle(100, 100, 50)
	d.Store().SetStrokeColor([]store.ID{id}, gfx.RGB(0, 0, 255))

	objs := firstObjects(t, exportToMap(t, d))
	obj := objs[0].(map[string]any)

	if obj["type"] != "circle" {
		t.Errorf("type = %v", obj["type"])
	}
	wantID := fmt.Sprintf("%08x-0000-0000-0000-%012x", uint32(id), uint32(id))
	if obj["id"] != wantID {
		t.Errorf("id = %v, want %v", obj["id"], wantID)
	}
	center := obj["center"].(map[string]any)
	if center["x"].(float64) != 100 || center["y"].(float64) != 100 {
		t.Errorf("center = %v", center)
	}
	if obj["radius"].(float64) != 50 {
		t.Errorf("radius = %v", obj["radius"])
	}

	// Fill is set by default; stroke was enabled above.
	if obj["fill"] == nil {
		t.Error("fill = null, want object")
	}
	stroke := obj["stroke"].(map[string]any)
	if stroke["color"] != "#0000ffff" {
		t.Errorf("stroke color = %v", stroke["color"])
	}

	tr := obj["transform"].(map[string]any)
	if tr["m11"].(float64) != 1 || tr["m12"].(float64) != 0 || tr["m22"].(float64) != 1 {
		t.Errorf("transform = %v", tr)
	}
	if meta := obj["metadata"].(map[string]any); len(meta) != 0 {
		t.Errorf("metadata = %v, want empty placeholder", meta)
	}
	if obj["created_at"] != obj["updated_at"] {
		t.Error("created_at and updated_at should match at export")
	}
}

func TestExportJSONStrokeNullWhenUnset(t *testing.T) {
	d := sketch.NewDrawing(800, 600)
	d.AddCircle(0, 0, 1)

	objs := firstObjects(t, exportToMap(t, d))
	obj := objs[0].(map[string]any)
	if v, present := obj["stroke"]; !present || v != nil {
		t.Errorf("stroke = %v (present %v), want explicit null", v, present)
	}
}

func TestExportJSONKindFields(t *testing.T) {
	d := sketch.NewDrawing(800, 600)
	d.AddLine(0, 0, 10, 10)
	d.AddPolygon([]gfx.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}, true)
	txt := d.AddText(10, 20, "hello", 16, "serif")
	if _, err := d.AddPath("M 0 0 L 10 0"); err != nil {
		t.Fatal(err)
	}
	g := d.AddGroup([]store.ID{txt})
	_ = g

	objs := firstObjects(t, exportToMap(t, d))
	byType := map[string]map[string]any{}
	for _, o := range objs {
		obj := o.(map[string]any)
		byType[obj["type"].(string)] = obj
	}

	line := byType["line"]
	if line["start"].(map[string]any)["x"].(float64) != 0 ||
		line["end"].(map[string]any)["x"].(float64) != 10 {
		t.Errorf("line = %v", line)
	}
	if line["line_style"] != "solid" {
		t.Errorf("line_style = %v", line["line_style"])
	}

	poly := byType["polygon"]
	if pts := poly["points"].([]any); len(pts) != 3 {
		t.Errorf("polygon points = %v", pts)
	}
	if poly["closed"] != true {
		t.Errorf("closed = %v", poly["closed"])
	}

	text := byType["text"]
	if text["text"] != "hello" || text["font_family"] != "serif" {
		t.Errorf("text = %v", text)
	}
	if text["align"] != "left" || text["baseline"] != "alphabetic" {
		t.Errorf("text enums = %v / %v", text["align"], text["baseline"])
	}

	path := byType["path"]
	if path["d"] != "M 0 0 L 10 0" {
		t.Errorf("path d = %v", path["d"])
	}

	group := byType["group"]
	children := group["children"].([]any)
	wantChild := fmt.Sprintf("%08x-0000-0000-0000-%012x", uint32(txt), uint32(txt))
	if len(children) != 1 || children[0] != wantChild {
		t.Errorf("children = %v, want [%v]", children, wantChild)
	}
	if group["pivot"] == nil {
		t.Error("group pivot missing")
	}
}
