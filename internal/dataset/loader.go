package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"bankmetrics/pkg/contracts/domain"
)

type format struct {
	ext    string
	decode func(io.Reader) (*domain.Dataset, error)
}

var formats = []format{
	{".yaml", DecodeYAML},
	{".yml", DecodeYAML},
	{".xlsx", DecodeWorkbook},
}

// Extensions lists the dataset file extensions Load understands.
func Extensions() []string {
	exts := make([]string, len(formats))
	for i, f := range formats {
		exts[i] = f.ext
	}
	return exts
}

func formatFor(path string) (format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if f.ext == ext {
			return f, true
		}
	}
	return format{}, false
}

// Load returns the dataset stored at path, or the built-in dataset when path
// is empty. The format follows the file extension: .yaml/.yml or .xlsx.
// The result is validated before it is returned.
func Load(path string) (*domain.Dataset, error) {
	var ds *domain.Dataset
	if path == "" {
		ds = Builtin()
	} else {
		f, ok := formatFor(path)
		if !ok {
			return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
		}
		var err error
		if ds, err = loadFile(path, f.decode); err != nil {
			return nil, err
		}
	}

	if err := Validate(ds); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", describe(path), err)
	}
	return ds, nil
}

// SupportedExtension reports whether Load understands the file extension.
func SupportedExtension(path string) bool {
	_, ok := formatFor(path)
	return ok
}

func loadFile(path string, decode func(io.Reader) (*domain.Dataset, error)) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	return ds, nil
}

func describe(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

type yamlDocument struct {
	Metrics []domain.MetricEntry `yaml:"metrics"`
}

// DecodeYAML reads a dataset document of the form
//
//	metrics:
//	  - id: revenue
//	    title: Revenue Trends (in Billions USD)
//	    years: ["2020", "2021"]
//	    banks:
//	      - name: JPMorgan Chase
//	        values: [129.8, 127.2]
//	        growth: "+108.6%"
func DecodeYAML(r io.Reader) (*domain.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc yamlDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, err
	}
	return domain.NewDataset(doc.Metrics...)
}

// EncodeYAML writes ds in the layout DecodeYAML reads.
func EncodeYAML(w io.Writer, ds *domain.Dataset) error {
	data, err := yaml.Marshal(yamlDocument{Metrics: ds.Entries()})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
