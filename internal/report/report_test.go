package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/asymptote"
)

func linearReport(t *testing.T) asymptote.Report {
	t.Helper()
	var samples []asymptote.Sample
	for n := uint64(1); n <= 40; n++ {
		samples = append(samples, asymptote.Sample{Size: n, Cost: 3*n + 20})
	}
	res, err := asymptote.Analyze([]asymptote.Component{asymptote.N}, samples)
	require.NoError(t, err)
	return asymptote.Report{
		Name:       "linear",
		Components: []asymptote.Component{asymptote.N},
		Samples:    samples,
		Results:    res,
		Elapsed:    1500 * time.Millisecond,
	}
}

func TestCoefficient(t *testing.T) {
	assert.Equal(t, "3.127ns", Coefficient(3.1274))
	assert.Equal(t, "-0.500ns", Coefficient(-0.5))
	assert.Equal(t, "42.0ns", Coefficient(42))
	assert.Equal(t, "1.5µs", Coefficient(1500))
	assert.Equal(t, "2s", Coefficient(2e9))
}

func TestFit(t *testing.T) {
	r := linearReport(t)
	assert.Equal(t, "3.000ns n  R² = 1.00", Fit(r.Results))

	degenerate, err := asymptote.Analyze(nil, r.Samples)
	require.NoError(t, err)
	assert.Equal(t, "n/a", RSquared(degenerate))
}

func TestSaveLoad(t *testing.T) {
	runs := []asymptote.Report{linearReport(t)}

	for _, name := range []string{"runs.json", "runs.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, runs))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, strings.HasSuffix(name, ".zst"), bytes.HasPrefix(raw, zstdMagic))

			doc, err := Load(path)
			require.NoError(t, err)
			require.Len(t, doc.Runs, 1)
			assert.Equal(t, FormatVersion, doc.Version)
			assert.Equal(t, runs[0].Samples, doc.Runs[0].Samples)
			assert.Equal(t, runs[0].Components, doc.Runs[0].Components)
			assert.InDelta(t, 3.0, doc.Runs[0].Results.Components[asymptote.N], 1e-9)

			data, err := ReadFile(path)
			require.NoError(t, err)
			samples, err := Samples(data, DefaultSamplesPath)
			require.NoError(t, err)
			assert.Equal(t, runs[0].Samples, samples)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version": 9, "runs": []}`), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "unsupported format version")
}

func TestSamples(t *testing.T) {
	doc := []byte(`{
		"bench": {
			"pairs": [[1, 10], [2, 20], [4, 40]],
			"objects": [{"size": 8, "cost_ns": 80}],
			"zero": [[0, 5]],
			"mixed": [[1, 10], "oops"],
			"empty": []
		}
	}`)

	samples, err := Samples(doc, "bench.pairs")
	require.NoError(t, err)
	assert.Equal(t, []asymptote.Sample{{Size: 1, Cost: 10}, {Size: 2, Cost: 20}, {Size: 4, Cost: 40}}, samples)

	samples, err = Samples(doc, "bench.objects")
	require.NoError(t, err)
	assert.Equal(t, []asymptote.Sample{{Size: 8, Cost: 80}}, samples)

	_, err = Samples(doc, "bench.zero")
	assert.ErrorIs(t, err, asymptote.ErrZeroSize)

	_, err = Samples(doc, "bench.mixed")
	assert.ErrorContains(t, err, "bench.mixed[1]")

	_, err = Samples(doc, "bench.empty")
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Samples(doc, "bench.nothing")
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Samples([]byte(`{"broken"`), "x")
	assert.Error(t, err)
}

func TestSamples_RejectsNonIntegers(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"negative cost", `{"p": [[1, 10], [2, -5]]}`, "p[1]: cost_ns"},
		{"fractional cost", `{"p": [[2, 2.9]]}`, "p[0]: cost_ns"},
		{"fractional size", `{"p": [[3.7, 4]]}`, "p[0]: size"},
		{"negative size", `{"p": [{"size": -1, "cost_ns": 4}]}`, "p[0]: size"},
		{"exponent cost", `{"p": [[4, 1e3]]}`, "p[0]: cost_ns"},
		{"cost beyond uint64", `{"p": [[4, 1e30]]}`, "p[0]: cost_ns"},
		{"size beyond uint64", `{"p": [[18446744073709551616, 4]]}`, "p[0]: size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := Samples([]byte(tt.doc), "p")
			require.ErrorIs(t, err, ErrNotWholeNumber)
			assert.ErrorContains(t, err, tt.want)
			assert.Nil(t, samples)
		})
	}

	samples, err := Samples([]byte(`{"p": [[18446744073709551615, 0]]}`), "p")
	require.NoError(t, err)
	assert.Equal(t, []asymptote.Sample{{Size: 18446744073709551615, Cost: 0}}, samples)
}

func TestConsole_Plain(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	r := linearReport(t)

	c.Progress(asymptote.Progress{Name: r.Name, Results: r.Results})
	assert.Empty(t, buf.String(), "progress is only drawn on a terminal")

	c.Finish(r, asymptote.N, nil)
	out := buf.String()
	assert.Equal(t, "linear: 3.000ns n  R² = 1.00  [40 samples in 1.5s, expected n]\n", out)

	buf.Reset()
	c.Finish(asymptote.Report{Name: "short"}, asymptote.Component(-1), errors.New("too few samples"))
	assert.Equal(t, "short: no fit  [0 samples in 0s] too few samples\n", buf.String())
}

func TestConsole_Live(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)
	c.live = true
	r := linearReport(t)

	c.Progress(asymptote.Progress{Name: r.Name, Sample: r.Samples[9], Samples: 10, Elapsed: time.Second, Results: r.Results})
	c.Progress(asymptote.Progress{Name: r.Name, Sample: r.Samples[10], Samples: 11, Elapsed: time.Second, Results: r.Results})
	c.Finish(r, asymptote.N, nil)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, clearLine))
	assert.Contains(t, out, "(n=11, 11 samples, 1s)")
	assert.True(t, strings.HasSuffix(out, "expected n]\n"))
}

func TestConsole_Ranking(t *testing.T) {
	r := linearReport(t)
	fits, err := asymptote.Rank(r.Samples)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewConsole(&buf, true).Ranking(fits)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2+len(asymptote.AllComponents))
	assert.True(t, strings.HasPrefix(lines[2], "* n "), lines[2])
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
