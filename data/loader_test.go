package data

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,tenor,forward,atm,call25,put25,call10,put10
2024-03-01,1M,1.0842,7.1,7.05,7.4,7.3,8.0
2024-03-04, 3m ,1.0851,7.3,7.2,7.6,,8.3
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)
	require.Equal(t, "1M", rows[0].Tenor)
	require.Equal(t, 1.0842, rows[0].Forward)
	require.Equal(t, 8.0, rows[0].Put10)
	require.Equal(t, 7.05, rows[0].Call25)

	require.Equal(t, "3m", rows[1].Tenor)
	require.True(t, math.IsNaN(rows[1].Call10))
	require.Equal(t, 8.3, rows[1].Put10)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,tenor,forward\n2024-03-01,1M,1.1\n"))
	require.True(t, errors.Is(err, ErrFormat))

	_, err = ReadCSV(strings.NewReader("date,tenor,forward,atm,call25,put25,call10,put10\n01/03/2024,1M,1,1,1,1,1,1\n"))
	require.True(t, errors.Is(err, ErrFormat))

	_, err = ReadCSV(strings.NewReader("date,tenor,forward,atm,call25,put25,call10,put10\n2024-03-01,1M,abc,1,1,1,1,1\n"))
	require.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	in := `[
		{"date": "2024-03-01", "tenor": "1M", "forward": 1.0842, "atm": 7.1, "call25": 7.05, "put25": 7.4, "call10": 7.3, "put10": 8.0},
		{"date": "2024-03-04", "tenor": "2W", "forward": 1.0851, "atm": 7.3, "call25": null, "put25": "7.6", "put10": 8.3}
	]`
	rows, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 7.4, rows[0].Put25)
	require.Equal(t, "2W", rows[1].Tenor)
	require.True(t, math.IsNaN(rows[1].Call25))
	require.True(t, math.IsNaN(rows[1].Call10))
	require.Equal(t, 7.6, rows[1].Put25)

	_, err = ReadJSON(strings.NewReader(`{"date": "2024-03-01"}`))
	require.True(t, errors.Is(err, ErrFormat))
}

func TestLoadRowsCompressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quotes.csv.zst")

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	rows, err := LoadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 7.1, rows[0].ATM)

	_, err = LoadRows(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	txt := filepath.Join(dir, "quotes.txt")
	require.NoError(t, os.WriteFile(txt, []byte(sampleCSV), 0o644))
	_, err = LoadRows(txt)
	require.True(t, errors.Is(err, ErrFormat))
}

func TestWriteResults(t *testing.T) {
	results := []CalibrationResult{{
		Date:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Tenor:   "1M",
		Forward: 1.1,
		Strikes: [5]float64{1.05, 1.08, 1.1, 1.12, 1.15},
		Rho:     -25.5,
		Nu:      80,
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "date,tenor,forward,strike_put10,strike_put25,strike_atm,strike_call25,strike_call10,rho,nu", lines[0])
	require.Equal(t, "2024-03-01,1M,1.1,1.05,1.08,1.1,1.12,1.15,-25.5,80", lines[1])
}

func TestWriteResultsFileCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.zst")
	results := []CalibrationResult{{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Tenor: "3M", Forward: 1.2}}
	require.NoError(t, WriteResultsFile(path, results))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	plain, err := dec.DecodeAll(raw, nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(plain), "date,tenor,forward,"))
	require.Contains(t, string(plain), "2024-03-01,3M,1.2,")
}
