package capture

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/netgrab/framecap/internal/core"
	"github.com/netgrab/framecap/internal/log"
	"github.com/netgrab/framecap/internal/record"
)

// State identifies the pipeline lifecycle phase.
type State int32

const (
	StateIdle State = iota
	StateCapturing
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config configures one capture run.
type Config struct {
	Device      string
	Filter      string
	FrameLimit  int
	Snaplen     int32
	Promiscuous bool
	PollTimeout time.Duration
	QueueDepth  int
}

// Pipeline decouples asynchronous frame arrival from single-threaded
// frame processing. The arrival goroutine only enqueues raw frames; the
// worker decodes, formats, and writes each record to the output sink in
// strict arrival order.
type Pipeline struct {
	cfg     Config
	dir     *Directory
	decoder Decoder
	open    func(device string, cfg Config) (Handle, error)
	out     io.Writer
	log     log.Logger

	state     atomic.Int32
	processed atomic.Uint64

	// pumpErr holds the first fatal read error observed by the pump.
	// Written only by the pump goroutine before it closes the frame
	// channel; Run reads it only after the WaitGroup join.
	pumpErr error
}

// New builds a pipeline writing frame records to out. Diagnostics go
// through the logger; out receives records exclusively.
func New(cfg Config, out io.Writer) *Pipeline {
	if cfg.FrameLimit <= 0 {
		cfg.FrameLimit = 1
	}
	if cfg.Snaplen <= 0 {
		cfg.Snaplen = 65535
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 200 * time.Millisecond
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = 4096
	}

	return &Pipeline{
		cfg:     cfg,
		dir:     NewDirectory(),
		decoder: NewLayerDecoder(),
		open:    openLive,
		out:     out,
		log:     log.GetLogger().WithField("run_id", uuid.NewString()),
	}
}

// State returns the current lifecycle phase.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Processed returns the number of frames emitted so far.
func (p *Pipeline) Processed() uint64 {
	return p.processed.Load()
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
}

// Run executes one capture run and blocks until FrameLimit frames have
// been processed, the frame source closes, or ctx is cancelled. On
// cancellation frames already queued are still drained and emitted. A
// run whose frames never arrive blocks until cancelled; there are no
// timeout semantics. The handle is released on every exit path, and
// capture is stopped only after the worker has returned. An engine
// read failure ends the run early: queued frames are still drained and
// the handle released, then the failure is returned.
func (p *Pipeline) Run(ctx context.Context) error {
	dev, err := p.dir.Select(p.cfg.Device)
	if err != nil {
		return err
	}

	h, err := p.open(dev.Name, p.cfg)
	if err != nil {
		return errors.Wrapf(err, "capture: opening device %s", dev.Name)
	}
	closeHandle := sync.OnceFunc(h.Close)
	defer closeHandle()

	if p.cfg.Filter != "" {
		if err := h.SetBPFFilter(p.cfg.Filter); err != nil {
			return errors.Wrapf(err, "capture: applying filter %q", p.cfg.Filter)
		}
	}

	p.log.WithFields(map[string]interface{}{
		"device": dev.Name,
		"filter": p.cfg.Filter,
		"limit":  p.cfg.FrameLimit,
	}).Info("capture started")

	pumpCtx, stopPump := context.WithCancel(ctx)
	defer stopPump()

	frames := make(chan core.RawFrame, p.cfg.QueueDepth)

	var wg sync.WaitGroup
	wg.Add(1)
	go p.pump(pumpCtx, h, frames, &wg)

	p.setState(StateCapturing)
	for p.processed.Load() < uint64(p.cfg.FrameLimit) {
		raw, ok := <-frames
		if !ok {
			// Producer closed and the queue drained: the normal
			// end-of-stream path, not an error.
			break
		}
		p.emit(raw)
		p.processed.Add(1)
	}

	p.setState(StateDraining)
	stopPump()
	wg.Wait()

	if stats, err := h.Stats(); err == nil {
		p.log.WithFields(map[string]interface{}{
			"received": stats.Received,
			"dropped":  stats.Dropped,
		}).Debug("handle statistics")
	}
	closeHandle()
	p.setState(StateStopped)

	// A read failure after the frame limit was already met does not
	// taint a completed run.
	if p.pumpErr != nil && p.processed.Load() < uint64(p.cfg.FrameLimit) {
		p.log.WithField("frames", p.processed.Load()).Warn("capture aborted")
		return errors.Wrap(p.pumpErr, "capture: reading frames")
	}

	p.log.WithField("frames", p.processed.Load()).Info("capture finished")
	return nil
}

// pump is the frame-arrival context. It must only enqueue: no decoding,
// no formatting, no I/O, so capture stays loss-free under load. A full
// queue blocks the send rather than dropping the frame. The channel is
// closed on read failure or cancellation; that close is the worker's
// end-of-stream signal. A fatal read error is recorded before the
// close so Run can report it once the queue has drained.
func (p *Pipeline) pump(ctx context.Context, h Handle, frames chan<- core.RawFrame, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(frames)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		data, ci, err := h.ReadPacketData()
		if err != nil {
			if isReadTimeout(err) {
				continue
			}
			if err == io.EOF {
				return
			}
			if ctx.Err() == nil {
				p.log.WithError(err).Error("frame read failed")
				p.pumpErr = err
			}
			return
		}

		raw := core.RawFrame{
			Data:       data,
			Timestamp:  ci.Timestamp,
			CaptureLen: ci.CaptureLength,
			Length:     ci.Length,
		}

		select {
		case frames <- raw:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pipeline) emit(raw core.RawFrame) {
	decoded := p.decoder.Decode(raw)
	rec := record.Format(decoded, raw.Timestamp, raw.Length)
	if _, err := io.WriteString(p.out, rec); err != nil {
		p.log.WithError(err).Error("writing frame record failed")
	}
}
