package ntuple

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/sw965/omw/encoding/gobx"
)

var (
	ErrTableCountMismatch = errors.New("重みエラー: テーブル数がパターン数と一致しません")
	ErrTableSizeMismatch  = errors.New("重みエラー: テーブルの要素数が不正です")
)

// RawExt selects the raw binary layout: a uint32 table count, then for every table a
// uint64 length followed by little-endian float32 weights. Any other extension uses gob.
const RawExt = ".bin"

// Load restores a network saved by Save. The table count and sizes must match Patterns;
// a mismatched file is rejected as a whole.
//
// LoadはSaveで保存したネットワークを読み込みます。テーブル数と要素数が一致しない場合はエラーを返します。
func Load(path string) (*Network, error) {
	var tables []Table
	var err error
	if filepath.Ext(path) == RawExt {
		tables, err = loadRaw(path)
	} else {
		tables, err = gobx.Load[[]Table](path)
	}
	if err != nil {
		return nil, err
	}

	if len(tables) != PatternCount {
		return nil, fmt.Errorf("%w: path=%s tables=%d patterns=%d", ErrTableCountMismatch, path, len(tables), PatternCount)
	}
	for i, t := range tables {
		if len(t) != TableSize {
			return nil, fmt.Errorf("%w: path=%s table=%d size=%d want=%d", ErrTableSizeMismatch, path, i, len(t), TableSize)
		}
	}
	return &Network{Tables: tables}, nil
}

// Save writes the tables in pattern order.
//
// Saveはテーブルをパターン順に書き込みます。
func (n *Network) Save(path string) error {
	if filepath.Ext(path) == RawExt {
		return saveRaw(n.Tables, path)
	}
	return gobx.Save(n.Tables, path)
}

func loadRaw(path string) ([]Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRaw(bufio.NewReader(f))
}

func saveRaw(tables []Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := WriteRaw(w, tables); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteRaw encodes tables in the raw layout.
func WriteRaw(w io.Writer, tables []Table) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tables))); err != nil {
		return err
	}
	buf := make([]byte, 4)
	for _, t := range tables {
		if err := binary.Write(w, binary.LittleEndian, uint64(len(t))); err != nil {
			return err
		}
		for _, v := range t {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadRaw decodes tables written by WriteRaw. It does not check them against Patterns.
func ReadRaw(r io.Reader) ([]Table, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	tables := make([]Table, 0, min(int(count), PatternCount))
	buf := make([]byte, 4)
	for i := uint32(0); i < count; i++ {
		var size uint64
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, err
		}
		if size > TableSize {
			return nil, fmt.Errorf("%w: table=%d size=%d", ErrTableSizeMismatch, i, size)
		}
		t := make(Table, size)
		for j := range t {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, err
			}
			t[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
		tables = append(tables, t)
	}
	return tables, nil
}
