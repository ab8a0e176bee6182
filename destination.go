package wisp

import (
	"encoding/binary"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Console delivers messages to an io.Writer, one line per message. Writes are
// mutex-guarded so interleaved deliveries from multiple goroutines stay whole.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console destination writing to w (e.g., os.Stdout).
// Panics if w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		panic("wisp: nil console writer")
	}
	return &Console{w: w}
}

func (c *Console) Deliver(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, message+"\n")
	return err
}

// File appends each message as one line to the file at path. The file is
// opened per delivery and never held between log calls, so external rotation
// or removal of the file cannot wedge the destination.
type File struct {
	path string
}

// NewFile creates a file destination appending to path. The file is created
// on first delivery if absent. Panics if path is empty.
func NewFile(path string) *File {
	if path == "" {
		panic("wisp: empty file path")
	}
	return &File{path: path}
}

func (f *File) Deliver(message string) error {
	fd, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", f.path)
	}
	_, werr := fd.WriteString(message + "\n")
	cerr := fd.Close()
	if werr != nil {
		return errors.Wrapf(werr, "append to %s", f.path)
	}
	return errors.Wrapf(cerr, "close %s", f.path)
}

// Database persists messages in a LevelDB store under monotonically
// increasing 8-byte big-endian sequence keys, so iteration order is delivery
// order. The sequence resumes from the highest existing key when an existing
// store is reopened.
type Database struct {
	db  *leveldb.DB
	seq uint64
}

// NewDatabase opens (or creates) the LevelDB store at path.
func NewDatabase(path string) (*Database, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{OpenFilesCacheCapacity: 16})
	if err != nil {
		return nil, errors.Wrapf(err, "open log store %s", path)
	}
	d := &Database{db: db}

	it := db.NewIterator(nil, nil)
	if it.Last() && len(it.Key()) == 8 {
		d.seq = binary.BigEndian.Uint64(it.Key())
	}
	it.Release()
	if err := it.Error(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "scan log store %s", path)
	}
	return d, nil
}

func (d *Database) Deliver(message string) error {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, atomic.AddUint64(&d.seq, 1))
	return errors.Wrap(d.db.Put(key, []byte(message), nil), "log store put")
}

// Close releases the underlying store. Deliveries after Close fail.
func (d *Database) Close() error {
	return d.db.Close()
}
