package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

type sampleReport struct {
	Applied int    `json:"applied"`
	Mode    string `json:"mode"`
}

func TestWriteReport_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := WriteReport(path, sampleReport{Applied: 3, Mode: "write"}); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var got sampleReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if got.Applied != 3 || got.Mode != "write" {
		t.Errorf("report = %+v", got)
	}
}

func TestWriteReport_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json.gz")

	if err := WriteReport(path, sampleReport{Applied: 7, Mode: "plan"}); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer zr.Close()

	var got sampleReport
	if err := json.NewDecoder(zr).Decode(&got); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if got.Applied != 7 || got.Mode != "plan" {
		t.Errorf("report = %+v", got)
	}
}
