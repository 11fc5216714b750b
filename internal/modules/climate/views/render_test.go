package views

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if indexTmpl == nil {
		t.Fatal("LoadTemplates() left indexTmpl nil")
	}
}

func TestLoadTemplates_failure(t *testing.T) {
	prev := indexTmpl
	t.Cleanup(func() { indexTmpl = prev })

	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{name: "no html files", fsys: fstest.MapFS{"templates/readme.txt": {Data: []byte("x")}}},
		{name: "parse error", fsys: fstest.MapFS{"templates/index.html": {Data: []byte("{{ .")}}},
		{name: "index not defined", fsys: fstest.MapFS{"templates/other.html": {Data: []byte(`{{define "other"}}x{{end}}`)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := loadTemplatesFromFS(tt.fsys, "templates"); err == nil {
				t.Fatal("loadTemplatesFromFS() = nil; want error")
			}
		})
	}
}

func TestRenderIndex_notLoaded(t *testing.T) {
	prev := indexTmpl
	indexTmpl = nil
	t.Cleanup(func() { indexTmpl = prev })

	var buf bytes.Buffer
	err := RenderIndex(&buf)
	if err == nil {
		t.Fatal("RenderIndex() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderIndex(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	if err := RenderIndex(&buf); err != nil {
		t.Fatalf("RenderIndex() = %v", err)
	}

	want := "Available Routes:" +
		"<br/>/api/v1.0/precipitation" +
		"<br/>/api/v1.0/stations" +
		"<br/>/api/v1.0/tobs" +
		"<br/>/api/v1.0/&lt;start&gt; (replace &lt;start&gt; with an actual start date in &#39;YYYY-MM-DD&#39; format)" +
		"<br/>/api/v1.0/&lt;start&gt;/&lt;end&gt; (replace &lt;start&gt; and &lt;end&gt; with actual start and end dates in &#39;YYYY-MM-DD&#39; format)"
	if got := buf.String(); got != want {
		t.Errorf("RenderIndex() =\n%q\nwant\n%q", got, want)
	}
}
