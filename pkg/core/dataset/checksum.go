package dataset

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Checksum вычисляет XXH3 хеш канонической формы датасета.
// Используется для контроля целостности снапшотов и в сводках синхронизации.
// NULL и пустая строка дают разные хеши за счет префикса типа.
func (d *Dataset) Checksum() uint64 {
	h := xxh3.New()

	var lenBuf [4]byte
	writeField := func(kind byte, text string) {
		h.Write([]byte{kind})
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(text)))
		h.Write(lenBuf[:])
		h.Write([]byte(text))
	}

	for _, col := range d.Columns {
		writeField('c', col)
	}
	for i := range d.Rows {
		for _, col := range d.Columns {
			v := d.Get(i, col)
			if v.IsNull() {
				writeField('n', "")
				continue
			}
			writeField(byte('0'+int(v.Kind())), v.Text())
		}
	}

	return h.Sum64()
}

// ChecksumHex возвращает хеш датасета в hex-представлении
func (d *Dataset) ChecksumHex() string {
	return fmt.Sprintf("%016x", d.Checksum())
}
