// seed_catalog genera un script SQL para poblar categorías y artículos a partir de la
// exportación CSV del inventario anterior (separador ';', codificación ISO-8859-1).
//
// Columnas: categoria;codigo;nombre;unidad;detalle;stock
//
// Uso: go run ./cmd/seed_catalog catalogo.csv [salida.sql]
// Por defecto escribe seed_catalog.sql en la raíz del módulo.
package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultIcon = "box"

type catalogRow struct {
	category string
	code     string
	name     string
	unit     string
	detail   string
	stock    decimal.Decimal
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog catalogo.csv [salida.sql]")
		os.Exit(2)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := parseCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	cats := writeSQL(w, rows, uuid.NewString)
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d categorías, %d artículos, %d filas descartadas\n", outPath, cats, len(rows), len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "  descartada: %s\n", s)
	}
}

// parseCatalog lee el CSV ya decodificado a UTF-8. Descarta la cabecera, las filas incompletas
// y los códigos repetidos dentro de la misma categoría; devuelve el motivo de cada descarte.
func parseCatalog(r io.Reader) ([]catalogRow, []string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows    []catalogRow
		skipped []string
		seen    = map[string]bool{}
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(clean(rec[0]), "categoria") {
			continue
		}
		if len(rec) < 4 {
			skipped = append(skipped, fmt.Sprintf("línea %d: faltan columnas", line))
			continue
		}
		row := catalogRow{
			category: clean(rec[0]),
			code:     clean(rec[1]),
			name:     clean(rec[2]),
			unit:     clean(rec[3]),
		}
		if len(rec) > 4 {
			row.detail = clean(rec[4])
		}
		if len(rec) > 5 && clean(rec[5]) != "" {
			// la exportación usa coma decimal
			stock, err := decimal.NewFromString(strings.ReplaceAll(clean(rec[5]), ",", "."))
			if err != nil || stock.IsNegative() {
				skipped = append(skipped, fmt.Sprintf("línea %d: stock inválido %q", line, rec[5]))
				continue
			}
			row.stock = stock.Round(2)
		}
		if row.category == "" || row.code == "" || row.name == "" || row.unit == "" {
			skipped = append(skipped, fmt.Sprintf("línea %d: campos requeridos vacíos", line))
			continue
		}
		key := row.category + "\x00" + row.code
		if seen[key] {
			skipped = append(skipped, fmt.Sprintf("línea %d: código %s repetido en %s", line, row.code, row.category))
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

// writeSQL escribe el script dentro de una transacción y devuelve el número de categorías.
func writeSQL(w io.Writer, rows []catalogRow, newID func() string) int {
	catSet := map[string]bool{}
	for _, r := range rows {
		catSet[r.category] = true
	}
	cats := make([]string, 0, len(catSet))
	for c := range catSet {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	fmt.Fprintln(w, "-- Catálogo inicial importado del inventario anterior")
	fmt.Fprintln(w, "BEGIN;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- 1. Categorías")
	for _, c := range cats {
		fmt.Fprintf(w, "INSERT INTO categories (id, name, icon) VALUES ('%s', '%s', '%s')\nON CONFLICT (name) DO NOTHING;\n",
			newID(), escapeSQL(c), defaultIcon)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- 2. Artículos y asignación a su categoría")
	for _, r := range rows {
		id := newID()
		fmt.Fprintf(w, "INSERT INTO articles (id, code, name, unit, detail, stock, opening_stock) VALUES ('%s', '%s', '%s', '%s', '%s', %s, %s);\n",
			id, escapeSQL(r.code), escapeSQL(r.name), escapeSQL(r.unit), escapeSQL(r.detail), r.stock.StringFixed(2), r.stock.StringFixed(2))
		fmt.Fprintf(w, "INSERT INTO article_categories (category_id, article_id)\nSELECT id, '%s' FROM categories WHERE name = '%s';\n",
			id, escapeSQL(r.category))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMIT;")
	return len(cats)
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
