package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/gjson"

	"github.com/alexshd/asymptote"
)

// FormatVersion is written into every saved document.
const FormatVersion = 1

// DefaultSamplesPath selects the samples of the first saved run.
const DefaultSamplesPath = "runs.0.samples"

var (
	// ErrNoSamples is returned when a gjson path selects nothing usable.
	ErrNoSamples = errors.New("no samples at path")

	// ErrNotWholeNumber is returned for sizes or costs that are not
	// non-negative integers within uint64.
	ErrNotWholeNumber = errors.New("expected a non-negative integer")
)

// Document is the on-disk form of one or more runs.
type Document struct {
	Version int                `json:"version"`
	Runs    []asymptote.Report `json:"runs"`
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	encoder = sync.OnceValue(func() *zstd.Encoder {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
		}
		return enc
	})
	decoder = sync.OnceValue(func() *zstd.Decoder {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
		}
		return dec
	})
)

// Save writes runs to path as indented JSON, zstd-compressed when path
// ends in ".zst".
func Save(path string, runs []asymptote.Report) error {
	data, err := json.MarshalIndent(Document{Version: FormatVersion, Runs: runs}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".zst") {
		data = encoder().EncodeAll(data, nil)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the JSON content of path, decompressing zstd frames
// regardless of the file extension.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		data, err = decoder().DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompression of %s failed: %w", path, err)
		}
	}
	return data, nil
}

// Load reads a saved Document.
func Load(path string) (Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if doc.Version != FormatVersion {
		return Document{}, fmt.Errorf("%s: unsupported format version %d", path, doc.Version)
	}
	return doc, nil
}

// Samples extracts samples from any JSON document using a gjson path.
//
// The path must select an array whose elements are either objects with
// "size" and "cost_ns" fields or [size, cost_ns] pairs. Both values must be
// plain non-negative integers, and the size must be at least one.
func Samples(data []byte, path string) ([]asymptote.Sample, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}

	result := gjson.GetBytes(data, path)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w %q", ErrNoSamples, path)
	}

	var (
		samples []asymptote.Sample
		bad     error
		index   int
	)
	result.ForEach(func(_, value gjson.Result) bool {
		defer func() { index++ }()
		var size, cost gjson.Result
		switch {
		case value.IsObject():
			size, cost = value.Get("size"), value.Get("cost_ns")
		case value.IsArray():
			size, cost = value.Get("0"), value.Get("1")
		}
		if size.Type != gjson.Number || cost.Type != gjson.Number {
			bad = fmt.Errorf("%s[%d]: expected {size, cost_ns} or [size, cost_ns], got %s", path, index, value.Raw)
			return false
		}
		n, err := wholeNumber(size)
		if err != nil {
			bad = fmt.Errorf("%s[%d]: size: %w", path, index, err)
			return false
		}
		if n == 0 {
			bad = fmt.Errorf("%s[%d]: %w", path, index, asymptote.ErrZeroSize)
			return false
		}
		ns, err := wholeNumber(cost)
		if err != nil {
			bad = fmt.Errorf("%s[%d]: cost_ns: %w", path, index, err)
			return false
		}
		samples = append(samples, asymptote.Sample{Size: n, Cost: ns})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoSamples, path)
	}
	return samples, nil
}

// wholeNumber parses the literal of a JSON number as a uint64. Negative,
// fractional, exponent-form and out-of-range literals are rejected rather
// than wrapped or truncated.
func wholeNumber(r gjson.Result) (uint64, error) {
	v, err := strconv.ParseUint(r.Raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotWholeNumber, r.Raw)
	}
	return v, nil
}
