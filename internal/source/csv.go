package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/andresuchdata/ventas-bi/backend-go/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiters and encodings are tried as a cartesian product, in order,
// until one combination parses. Latin-1 accepts any byte sequence, so it
// doubles as the catch-all last attempt.
var csvDelimiters = []rune{',', ';'}

// CSVSource reads a sales CSV from disk. Delimiter and text encoding are
// detected by trial.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Load(ctx context.Context) (*domain.RawTable, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &DataSourceError{Source: "csv", Err: fmt.Errorf("reading %s: %w", s.Path, err)}
	}
	table, err := ParseCSV(data)
	if err != nil {
		return nil, &DataSourceError{Source: "csv", Err: fmt.Errorf("parsing %s: %w", s.Path, err)}
	}
	return table, nil
}

// BytesSource serves an already-acquired CSV payload, e.g. an HTTP upload
// or an object fetched from a bucket.
type BytesSource struct {
	Name string
	Data []byte
}

func NewBytesSource(name string, data []byte) *BytesSource {
	return &BytesSource{Name: name, Data: data}
}

func (s *BytesSource) Load(ctx context.Context) (*domain.RawTable, error) {
	table, err := ParseCSV(s.Data)
	if err != nil {
		return nil, &DataSourceError{Source: "upload", Err: fmt.Errorf("parsing %s: %w", s.Name, err)}
	}
	return table, nil
}

// ParseCSV tries every delimiter/encoding combination until one yields a
// well-formed table; the last failure propagates when none does.
func ParseCSV(data []byte) (*domain.RawTable, error) {
	var lastErr error
	for _, delim := range csvDelimiters {
		for _, decode := range []func([]byte) ([]byte, error){
			decodeUTF8,
			decodeUTF8BOM,
			decodeWindows1252,
			decodeLatin1,
		} {
			text, err := decode(data)
			if err != nil {
				lastErr = err
				continue
			}
			table, err := parseWithDelimiter(text, delim)
			if err != nil {
				lastErr = err
				continue
			}
			return table, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("empty input")
	}
	return nil, lastErr
}

func parseWithDelimiter(text []byte, delim rune) (*domain.RawTable, error) {
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = delim
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}
	// A single-column result usually means the wrong delimiter was tried
	// on a delimited file; reject it so the other candidate gets a turn.
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("delimiter %q yields a single column", delim)
	}
	return &domain.RawTable{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

func decodeUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return nil, fmt.Errorf("input carries a UTF-8 BOM")
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8")
	}
	return data, nil
}

func decodeUTF8BOM(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return nil, fmt.Errorf("input has no UTF-8 BOM")
	}
	stripped := data[len(utf8BOM):]
	if !utf8.Valid(stripped) {
		return nil, fmt.Errorf("input is not valid UTF-8 after BOM")
	}
	return stripped, nil
}

func decodeWindows1252(data []byte) ([]byte, error) {
	return charmap.Windows1252.NewDecoder().Bytes(data)
}

func decodeLatin1(data []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(data)
}
