package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"

	"github.com/dontcallmebro/BQL-APP/utils"
)

// ErrFormat is returned for input files that cannot be parsed into rows.
var ErrFormat = errors.New("unsupported input format")

// Input columns. Order in the file is free.
var inputColumns = []string{"date", "tenor", "forward", "atm", "call25", "put25", "call10", "put10"}

var outputHeader = []string{
	"date", "tenor", "forward",
	"strike_put10", "strike_put25", "strike_atm", "strike_call25", "strike_call10",
	"rho", "nu",
}

// LoadRows reads rows from a .csv or .json file. A trailing .zst is decompressed first.
func LoadRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
		name = strings.TrimSuffix(name, ".zst")
	}

	switch filepath.Ext(name) {
	case ".csv":
		return ReadCSV(r)
	case ".json":
		return ReadJSON(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrFormat, path)
}

// ReadCSV parses rows from CSV with a header line. Blank, "nan" and "na" cells are missing quotes.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range inputColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrFormat, c)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cell := func(c string) string {
			if i := idx[c]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		date, err := parseDate(cell("date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := Row{Date: date, Tenor: cell("tenor")}
		for _, c := range inputColumns[2:] {
			v, err := parseQuote(cell(c))
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, c, err)
			}
			row.set(c, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadJSON parses rows from a JSON array of objects keyed like the CSV header. null is a missing quote.
func ReadJSON(r io.Reader) ([]Row, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var p fastjson.Parser
	v, err := p.ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	rows := make([]Row, 0, len(items))
	for i, item := range items {
		date, err := parseDate(string(item.GetStringBytes("date")))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		row := Row{Date: date, Tenor: string(item.GetStringBytes("tenor"))}
		for _, c := range inputColumns[2:] {
			v, err := jsonQuote(item.Get(c))
			if err != nil {
				return nil, fmt.Errorf("item %d field %s: %w", i, c, err)
			}
			row.set(c, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteResults writes one CSV line per result. Rho and nu stay scaled by 100.
func WriteResults(w io.Writer, results []CalibrationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(outputHeader); err != nil {
		return err
	}
	for _, res := range results {
		rec := []string{res.Date.Format(utils.Layout), res.Tenor, formatFloat(res.Forward)}
		for _, k := range res.Strikes {
			rec = append(rec, formatFloat(k))
		}
		rec = append(rec, formatFloat(res.Rho), formatFloat(res.Nu))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsFile writes results to path, compressing when it ends in .zst.
func WriteResultsFile(path string, results []CalibrationResult) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(strings.ToLower(path), ".zst") {
		return WriteResults(file, results)
	}
	enc, err := zstd.NewWriter(file)
	if err != nil {
		return err
	}
	if err = WriteResults(enc, results); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func (r *Row) set(column string, v float64) {
	switch column {
	case "forward":
		r.Forward = v
	case "atm":
		r.ATM = v
	case "call25":
		r.Call25 = v
	case "put25":
		r.Put25 = v
	case "call10":
		r.Call10 = v
	case "put10":
		r.Put10 = v
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(utils.Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrFormat, s)
	}
	return t, nil
}

func parseQuote(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func jsonQuote(v *fastjson.Value) (float64, error) {
	if v == nil {
		return math.NaN(), nil
	}
	switch v.Type() {
	case fastjson.TypeNull:
		return math.NaN(), nil
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		return parseQuote(strings.TrimSpace(string(b)))
	}
	return v.Float64()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
