package csvtext

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed indica un archivo estructuralmente inválido (sin encabezado o
// con filas cuyo número de campos no coincide con él). Es fatal: la importación
// se detiene antes de tocar la base de datos.
var ErrMalformed = errors.New("csv malformado")

// Options controla el parseo del texto delimitado.
type Options struct {
	Delimiter  rune // por defecto ','
	StripBOM   bool // eliminar el Byte Order Mark inicial (exportes de Excel)
	LazyQuotes bool // tolerar comillas sin escapar dentro de campos
}

// Record es una fila de datos: nombre de columna -> valor sin espacios laterales.
type Record map[string]string

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse convierte el buffer en una secuencia ordenada de registros usando la
// primera línea como encabezado. Las líneas vacías se omiten. Cualquier error
// estructural envuelve ErrMalformed.
func Parse(data []byte, opts Options) ([]Record, error) {
	if opts.StripBOM {
		data = bytes.TrimPrefix(data, utf8BOM)
	}

	r := csv.NewReader(bytes.NewReader(data))
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	r.LazyQuotes = opts.LazyQuotes
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: encabezado ausente", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// encoding/csv reporta aquí el desajuste de campos contra el encabezado
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if isEmptyLine(fields) {
			continue
		}
		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = strings.TrimSpace(fields[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

func isEmptyLine(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
