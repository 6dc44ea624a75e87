/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package logger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Collects the primitive prefix values (time, caller, level) of an entry.
type sliceArrayEncoder struct {
	elems []any
}

func (s *sliceArrayEncoder) AppendArray(v zapcore.ArrayMarshaler) error {
	enc := &sliceArrayEncoder{}
	err := v.MarshalLogArray(enc)
	s.elems = append(s.elems, enc.elems)
	return err
}

func (s *sliceArrayEncoder) AppendObject(v zapcore.ObjectMarshaler) error {
	m := zapcore.NewMapObjectEncoder()
	err := v.MarshalLogObject(m)
	s.elems = append(s.elems, m.Fields)
	return err
}

func (s *sliceArrayEncoder) AppendReflected(v any) error {
	s.elems = append(s.elems, v)
	return nil
}

func (s *sliceArrayEncoder) AppendBool(v bool)              { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendByteString(v []byte)      { s.elems = append(s.elems, string(v)) }
func (s *sliceArrayEncoder) AppendComplex128(v complex128)  { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendComplex64(v complex64)    { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendDuration(v time.Duration) { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendFloat64(v float64)        { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendFloat32(v float32)        { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt(v int)                { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt64(v int64)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt32(v int32)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt16(v int16)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt8(v int8)              { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendString(v string)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendTime(v time.Time)         { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint(v uint)              { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint64(v uint64)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint32(v uint32)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint16(v uint16)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint8(v uint8)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUintptr(v uintptr)        { s.elems = append(s.elems, v) }

func singleLetterLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	single := "U"

	switch l {
	case zapcore.DebugLevel:
		single = "D"
	case zapcore.InfoLevel:
		single = "I"
	case zapcore.WarnLevel:
		single = "W"
	case zapcore.ErrorLevel:
		single = "E"
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		single = "P"
	case zapcore.FatalLevel:
		single = "F"
	}

	enc.AppendString(single)
}

var prefixPool = sync.Pool{
	New: func() any {
		return &sliceArrayEncoder{}
	},
}

// A zap encoder that follows the "juice" logging convention
// Writes out <date> <caller:line> <level>] <message> <fields>
type juiceEncoder struct {
	zapcore.Encoder
	config zapcore.EncoderConfig

	pool buffer.Pool
}

func NewJuiceEncoder(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
	cfg.ConsoleSeparator = " "
	cfg.EncodeLevel = singleLetterLevelEncoder
	if cfg.LineEnding == "" {
		cfg.LineEnding = zapcore.DefaultLineEnding
	}

	// Entry keys are left empty so the JSON encoder only ever renders fields.
	fieldsConfig := zapcore.EncoderConfig{
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		LineEnding:     cfg.LineEnding,
	}

	return &juiceEncoder{
		Encoder: zapcore.NewJSONEncoder(fieldsConfig),
		config:  cfg,
		pool:    buffer.NewPool(),
	}, nil
}

func (c *juiceEncoder) Clone() zapcore.Encoder {
	return &juiceEncoder{
		Encoder: c.Encoder.Clone(),
		config:  c.config,
		pool:    c.pool,
	}
}

func (c *juiceEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := c.pool.Get()

	prefix := prefixPool.Get().(*sliceArrayEncoder)
	defer func() {
		prefix.elems = prefix.elems[:0]
		prefixPool.Put(prefix)
	}()

	if c.config.EncodeTime != nil {
		c.config.EncodeTime(ent.Time, prefix)
	}

	if ent.Caller.Defined && c.config.EncodeCaller != nil {
		c.config.EncodeCaller(ent.Caller, prefix)
	}

	c.config.EncodeLevel(ent.Level, prefix)

	for i := range prefix.elems {
		if i > 0 {
			line.AppendString(c.config.ConsoleSeparator)
		}
		fmt.Fprint(line, prefix.elems[i])
	}

	line.AppendByte(']')
	line.AppendByte(' ')
	line.AppendString(ent.Message)

	// Fields trail the message as a single JSON object.
	encoded, err := c.Encoder.EncodeEntry(zapcore.Entry{}, fields)
	if err == nil {
		if object := trimLineEnding(encoded.String(), c.config.LineEnding); object != "{}" {
			line.AppendByte(' ')
			line.AppendString(object)
		}
		encoded.Free()
	}

	line.AppendString(c.config.LineEnding)
	return line, nil
}

func trimLineEnding(s string, ending string) string {
	if len(s) >= len(ending) && s[len(s)-len(ending):] == ending {
		return s[:len(s)-len(ending)]
	}

	return s
}
