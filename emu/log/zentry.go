package log

import (
	"fmt"
	"time"
)

// Level mirrors logrus' severity levels so EntryZ can dispatch into the
// same Entry machinery used by the printf-style family in entry.go.
type Level int

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

// LogContext lets other packages (e.g. a frontend attaching the current ROM
// name or frame number) inject extra fields on every EntryZ, without the hot
// logging path needing to know about them.
type LogContext interface {
	AddLogContext(e *EntryZ)
}

var contexts []LogContext

func AddContext(c LogContext) {
	contexts = append(contexts, c)
}

const maxZFields = 8

// EntryZ is a chainable, allocation-light log entry. Unlike Entry it is used
// by pointer and is nil-safe throughout: when a module's level isn't
// enabled, Module.logz returns a nil *EntryZ and every method below becomes a
// no-op, so disabled log lines cost nothing beyond the initial Enabled check.
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	zfbuf [maxZFields]ZField
	zfidx int
}

func NewEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) field(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < len(e.zfbuf) {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	return e.field(ZField{Type: FieldTypeBool, Key: key, Boolean: v})
}

func (e *EntryZ) String(key string, v string) *EntryZ {
	return e.field(ZField{Type: FieldTypeString, Key: key, String: v})
}

func (e *EntryZ) Stringer(key string, v fmt.Stringer) *EntryZ {
	return e.field(ZField{Type: FieldTypeStringer, Key: key, Interface: v})
}

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return e.field(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return e.field(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex32(key string, v uint32) *EntryZ {
	return e.field(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex64(key string, v uint64) *EntryZ {
	return e.field(ZField{Type: FieldTypeHex64, Key: key, Integer: v})
}

func (e *EntryZ) Uint8(key string, v uint8) *EntryZ {
	return e.field(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint16(key string, v uint16) *EntryZ {
	return e.field(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint32(key string, v uint32) *EntryZ {
	return e.field(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint64(key string, v uint64) *EntryZ {
	return e.field(ZField{Type: FieldTypeUint, Key: key, Integer: v})
}

func (e *EntryZ) Int(key string, v int) *EntryZ {
	return e.field(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.field(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	return e.field(ZField{Type: FieldTypeDuration, Key: key, Duration: d})
}

func (e *EntryZ) Blob(key string, b []byte) *EntryZ {
	return e.field(ZField{Type: FieldTypeBlob, Key: key, Blob: b})
}

// End flushes the entry through the standard Entry/logrus pipeline.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(Fields, e.zfidx+1)
	for i := 0; i < e.zfidx; i++ {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}
	for _, c := range contexts {
		c.AddLogContext(e)
	}

	entry := Entry{mod: e.mod}.WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
}
