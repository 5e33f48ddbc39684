// Package snapshot сохраняет и восстанавливает датасеты в виде
// zstd-сжатых JSON файлов с контролем целостности через XXH3.
// Основное применение - резервная копия целевой таблицы перед
// разрушительной синхронизацией (политики replace/update).
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
	"github.com/ruslano69/rowsync/pkg/gateway"
)

// FormatVersion - версия формата снапшота
const FormatVersion = "1.0"

// cell - сериализованная ячейка: тип + строковая форма значения
type cell struct {
	K int    `json:"k"`
	V string `json:"v,omitempty"`
}

// document - корневая структура файла снапшота (внутри zstd потока)
type document struct {
	Version   string    `json:"version"`
	Table     string    `json:"table"`
	CreatedAt time.Time `json:"created_at"`
	Checksum  string    `json:"checksum"` // XXH3 датасета, hex
	Columns   []string  `json:"columns"`
	Rows      [][]cell  `json:"rows"`
}

// Write сериализует датасет в zstd-сжатый JSON поток
func Write(w io.Writer, tableName string, ds *dataset.Dataset) error {
	doc := document{
		Version:   FormatVersion,
		Table:     tableName,
		CreatedAt: time.Now().UTC(),
		Checksum:  ds.ChecksumHex(),
		Columns:   ds.Columns,
		Rows:      make([][]cell, len(ds.Rows)),
	}

	for i := range ds.Rows {
		cells := make([]cell, len(ds.Columns))
		for j, col := range ds.Columns {
			v := ds.Get(i, col)
			cells[j] = cell{K: int(v.Kind()), V: v.Text()}
		}
		doc.Rows[i] = cells
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	if err := json.NewEncoder(zw).Encode(doc); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish zstd stream: %w", err)
	}

	return nil
}

// Read восстанавливает датасет из zstd-сжатого JSON потока.
// Контрольная сумма восстановленного датасета сверяется с записанной -
// несовпадение означает поврежденный снапшот.
func Read(r io.Reader) (string, *dataset.Dataset, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var doc document
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		return "", nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	ds := dataset.New(doc.Columns...)
	for i, cells := range doc.Rows {
		if len(cells) != len(doc.Columns) {
			return "", nil, fmt.Errorf("snapshot row %d has %d cells, expected %d", i, len(cells), len(doc.Columns))
		}
		row := make(dataset.Row, len(cells))
		for j, c := range cells {
			v, err := dataset.FromText(dataset.Kind(c.K), c.V)
			if err != nil {
				return "", nil, fmt.Errorf("snapshot row %d, column %s: %w", i, doc.Columns[j], err)
			}
			row[doc.Columns[j]] = v
		}
		ds.AppendRow(row)
	}

	if got := ds.ChecksumHex(); got != doc.Checksum {
		return "", nil, fmt.Errorf("snapshot checksum mismatch: stored %s, computed %s", doc.Checksum, got)
	}

	return doc.Table, ds, nil
}

// SaveFile сохраняет датасет в файл снапшота
func SaveFile(path, tableName string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	if err := Write(f, tableName, ds); err != nil {
		return err
	}

	return f.Close()
}

// LoadFile восстанавливает датасет из файла снапшота
func LoadFile(path string) (string, *dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Capture снимает текущее состояние таблицы через шлюз и сохраняет
// его в файл снапшота. Вызывается перед разрушительной синхронизацией.
func Capture(ctx context.Context, gw gateway.Gateway, tableName, path string) error {
	ds, err := gw.FetchTable(ctx, tableName)
	if err != nil {
		return fmt.Errorf("failed to fetch table %s for snapshot: %w", tableName, err)
	}

	if err := SaveFile(path, tableName, ds); err != nil {
		return fmt.Errorf("failed to save snapshot of %s: %w", tableName, err)
	}

	return nil
}
