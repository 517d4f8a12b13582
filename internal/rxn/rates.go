package rxn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RateSample is one (time, rate) entry of a tabulated rate.
type RateSample struct {
	Time  float64
	Value float64
}

// RateLoader resolves the rate file named by a pathway.
type RateLoader interface {
	LoadRates(path string) ([]RateSample, error)
}

// FileRateLoader reads rate files from disk, relative to Dir.
type FileRateLoader struct {
	Dir string
}

func (l FileRateLoader) LoadRates(path string) ([]RateSample, error) {
	if l.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rate file: %w", err)
	}
	defer f.Close()
	samples, err := ParseRates(f)
	if err != nil {
		return nil, fmt.Errorf("rate file %s: %w", path, err)
	}
	return samples, nil
}

// MapRateLoader serves rate tables from memory.
type MapRateLoader map[string][]RateSample

func (m MapRateLoader) LoadRates(path string) ([]RateSample, error) {
	samples, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("rate file %s not found", path)
	}
	return append([]RateSample(nil), samples...), nil
}

// ParseRates reads whitespace or comma separated "time value" lines.
// Blank lines and lines starting with '#' are skipped. Order is preserved.
func ParseRates(r io.Reader) ([]RateSample, error) {
	var out []RateSample
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected time and rate", line)
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad time %q", line, fields[0])
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad rate %q", line, fields[1])
		}
		out = append(out, RateSample{Time: t, Value: v})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
