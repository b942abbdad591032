package charts_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/system/charts"
)

var points = []charts.Point{
	{Label: "Jan", Value: 45000},
	{Label: "Feb", Value: 52000},
	{Label: "Mar", Value: 48000},
}

func TestRenderers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string, string, string, []charts.Point) ([]byte, error)
	}{
		{"bar", charts.Bar},
		{"line", charts.Line},
		{"pie", charts.Pie},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := tt.fn("Monthly Collections", "2024", "Amount", points)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.Contains(html, []byte("Monthly Collections")) {
				t.Error("chart should carry its title")
			}
			if !bytes.Contains(html, []byte("echarts")) {
				t.Error("chart should load echarts")
			}
		})
	}
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	charts.Write(rec, []byte("<html></html>"))
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "<html></html>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
