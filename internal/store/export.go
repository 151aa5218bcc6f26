package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/izhinet/izhinet/internal/network"
)

// WriteJSONL writes the spike log as one JSON object per line.
func WriteJSONL(w io.Writer, log network.SpikeLog) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, spike := range log {
		if err := enc.Encode(spike); err != nil {
			return fmt.Errorf("failed to encode spike: %w", err)
		}
	}
	return bw.Flush()
}

// arrowBatchSize bounds the rows per Arrow record batch.
const arrowBatchSize = 1 << 16

// ArrowSchema is the columnar layout of an exported spike log.
var ArrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "time_ms", Type: arrow.PrimitiveTypes.Int32},
	{Name: "neuron", Type: arrow.PrimitiveTypes.Int32},
}, nil)

// seekBuffer adapts an in-memory byte slice to io.WriteSeeker so the Arrow
// file writer, which needs seek support for its footer, can target a plain
// io.Writer.
type seekBuffer struct {
	buf []byte
	pos int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + int64(len(p)); need > int64(len(b.buf)) {
		if need > int64(cap(b.buf)) {
			grown := make([]byte, need)
			copy(grown, b.buf)
			b.buf = grown
		} else {
			b.buf = b.buf[:need]
		}
	}
	copy(b.buf[b.pos:], p)
	b.pos += int64(len(p))
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, fmt.Errorf("seekBuffer: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("seekBuffer: negative seek position %d", abs)
	}
	b.pos = abs
	return abs, nil
}

// WriteArrow writes the spike log as an Arrow IPC file with time_ms and
// neuron columns, batched for large logs.
func WriteArrow(w io.Writer, log network.SpikeLog) error {
	alloc := memory.NewGoAllocator()
	ws := &seekBuffer{}
	fw, err := ipc.NewFileWriter(ws, ipc.WithSchema(ArrowSchema), ipc.WithAllocator(alloc))
	if err != nil {
		return fmt.Errorf("failed to create Arrow writer: %w", err)
	}

	builder := array.NewRecordBuilder(alloc, ArrowSchema)
	defer builder.Release()

	times := builder.Field(0).(*array.Int32Builder)
	neurons := builder.Field(1).(*array.Int32Builder)

	flush := func() error {
		rec := builder.NewRecord()
		defer rec.Release()
		if err := fw.Write(rec); err != nil {
			return fmt.Errorf("failed to write Arrow record: %w", err)
		}
		return nil
	}

	for i, spike := range log {
		times.Append(int32(spike.TimeMS))
		neurons.Append(int32(spike.Neuron))
		if (i+1)%arrowBatchSize == 0 {
			if err := flush(); err != nil {
				fw.Close()
				return err
			}
		}
	}
	if times.Len() > 0 || len(log) == 0 {
		if err := flush(); err != nil {
			fw.Close()
			return err
		}
	}

	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to finalize Arrow file: %w", err)
	}
	if _, err := w.Write(ws.buf); err != nil {
		return fmt.Errorf("failed to write Arrow file: %w", err)
	}
	return nil
}
