package partial

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	timefmt "github.com/itchyny/timefmt-go"
	"github.com/modopayments/go-modo/v8"
	"github.com/modopayments/go-modo/v8/uuid"
)

// Marshal returns the JSON encoding of v with only the fields selected
// by the filter; unselected properties are omitted, and a selected
// container whose children are all filtered out encodes as {}. Array
// elements are transparent: the selection applies to the fields of every
// element.
//
// It accepts the value types a decoded JSON document can contain (nil,
// bool, integers, floats, *big.Int, json.Number, string, []any, and
// map[string]any) plus uuid.UUID, uuid.NullUUID, time.Time, and
// modo.Timestamp leaves. Object keys are written in sorted order. NaN
// encodes as null and infinities are truncated to (+|-) math.MaxFloat64.
func (f *Filter) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	e := &encoder{w: &b, filter: f, pass: f.Pass()}
	if err := e.encode(v, nil); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type encoder struct {
	w interface {
		io.Writer
		io.ByteWriter
		io.StringWriter
	}
	filter *Filter
	pass   bool
	buf    [64]byte
}

func (e *encoder) encode(v any, path []PathSegment) error {
	switch v := v.(type) {
	case nil:
		e.w.WriteString("null")
	case bool:
		if v {
			e.w.WriteString("true")
		} else {
			e.w.WriteString("false")
		}
	case uint:
		e.w.Write(strconv.AppendUint(e.buf[:0], uint64(v), 10))
	case uint8:
		e.w.Write(strconv.AppendUint(e.buf[:0], uint64(v), 10))
	case uint16:
		e.w.Write(strconv.AppendUint(e.buf[:0], uint64(v), 10))
	case uint32:
		e.w.Write(strconv.AppendUint(e.buf[:0], uint64(v), 10))
	case uint64:
		e.w.Write(strconv.AppendUint(e.buf[:0], v, 10))
	case int:
		e.w.Write(strconv.AppendInt(e.buf[:0], int64(v), 10))
	case int8:
		e.w.Write(strconv.AppendInt(e.buf[:0], int64(v), 10))
	case int16:
		e.w.Write(strconv.AppendInt(e.buf[:0], int64(v), 10))
	case int32:
		e.w.Write(strconv.AppendInt(e.buf[:0], int64(v), 10))
	case int64:
		e.w.Write(strconv.AppendInt(e.buf[:0], v, 10))
	case float32:
		e.encodeFloat64(float64(v))
	case float64:
		e.encodeFloat64(v)
	case *big.Int:
		e.w.Write(v.Append(e.buf[:0], 10))
	case json.Number:
		e.w.WriteString(v.String())
	case string:
		e.encodeString(v)
	case []any:
		return e.encodeArray(v, path)
	case map[string]any:
		return e.encodeObject(v, path)
	case uuid.UUID:
		e.encodeString(v.String())
	case uuid.NullUUID:
		if v.Valid {
			e.encodeString(v.UUID.String())
		} else {
			e.w.WriteString("null")
		}
	case time.Time:
		e.encodeTime(v)
	case modo.Timestamp:
		e.encodeTime(v.Time)
	default:
		return &unsupportedTypeError{v}
	}
	return nil
}

func (e *encoder) encodeTime(t time.Time) {
	if e.filter.timeFormat != "" {
		e.encodeString(timefmt.Format(t, e.filter.timeFormat))
		return
	}
	e.w.Write(strconv.AppendInt(e.buf[:0], t.Unix(), 10))
}

// ref: floatEncoder in encoding/json
func (e *encoder) encodeFloat64(f float64) {
	if math.IsNaN(f) {
		e.w.WriteString("null")
		return
	}
	if f >= math.MaxFloat64 {
		f = math.MaxFloat64
	} else if f <= -math.MaxFloat64 {
		f = -math.MaxFloat64
	}
	format := byte('f')
	if x := math.Abs(f); x != 0 && x < 1e-6 || x >= 1e21 {
		format = 'e'
	}
	buf := strconv.AppendFloat(e.buf[:0], f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	e.w.Write(buf)
}

// ref: encodeState#string in encoding/json
func (e *encoder) encodeString(s string) {
	e.w.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if ' ' <= b && b <= '~' && b != '"' && b != '\\' {
				i++
				continue
			}
			if start < i {
				e.w.WriteString(s[start:i])
			}
			switch b {
			case '"':
				e.w.WriteString(`\"`)
			case '\\':
				e.w.WriteString(`\\`)
			case '\b':
				e.w.WriteString(`\b`)
			case '\f':
				e.w.WriteString(`\f`)
			case '\n':
				e.w.WriteString(`\n`)
			case '\r':
				e.w.WriteString(`\r`)
			case '\t':
				e.w.WriteString(`\t`)
			default:
				const hex = "0123456789abcdef"
				e.w.WriteString(`\u00`)
				e.w.WriteByte(hex[b>>4])
				e.w.WriteByte(hex[b&0xF])
			}
			i++
			start = i
			continue
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			if start < i {
				e.w.WriteString(s[start:i])
			}
			e.w.WriteString(`\ufffd`)
			i += size
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		e.w.WriteString(s[start:])
	}
	e.w.WriteByte('"')
}

func (e *encoder) encodeArray(vs []any, path []PathSegment) error {
	e.w.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			e.w.WriteByte(',')
		}
		if err := e.encode(v, append(path, Element(i))); err != nil {
			return err
		}
	}
	e.w.WriteByte(']')
	return nil
}

func (e *encoder) encodeObject(vs map[string]any, path []PathSegment) error {
	e.w.WriteByte('{')
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := 0
	for _, k := range keys {
		kpath := append(path, Field(k))
		if !e.pass && !e.filter.sel.Matches(kpath, e.filter.ignoreCase) {
			continue
		}
		if n > 0 {
			e.w.WriteByte(',')
		}
		n++
		e.encodeString(k)
		e.w.WriteByte(':')
		if err := e.encode(vs[k], kpath); err != nil {
			return err
		}
	}
	e.w.WriteByte('}')
	return nil
}

type unsupportedTypeError struct {
	v any
}

func (err *unsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type: %[1]T (%[1]v)", err.v)
}
