// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package dat

import (
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/vanadiel/dattool/internal/log"
)

// OutputKind names which direction a Processor job converts.
type OutputKind int

const (
	OutputYaml OutputKind = iota
	OutputDat
)

func (k OutputKind) String() string {
	if k == OutputDat {
		return "dat"
	}
	return "yaml"
}

// StateKind is the phase of a Message. Error carries the failure's text in
// Message.Err; Working and Finished leave it empty.
type StateKind int

const (
	StateWorking StateKind = iota
	StateFinished
	StateError
)

// Message is one notification out of a Processor: a job always reports
// Working synchronously before being queued, then exactly one of Finished
// or Error once its goroutine completes.
type Message struct {
	Descriptor DatDescriptor
	Output     OutputKind
	State      StateKind
	Err        string
}

// Processor runs DatDescriptor conversions on a bounded worker pool and
// reports progress on a channel, mirroring original_source's DatProcessor:
// a fixed-size thread pool plus an mpsc sender, so a caller can watch a
// large batch complete without blocking the submitting goroutine on each
// individual conversion. Grounded on
// _examples/original_source/crates/processor/src/processor.rs.
type Processor struct {
	messages chan Message
	jobs     chan func()
	log      *log.Helper
}

// NewProcessor starts a Processor with workers goroutines draining jobs.
// A workers value <= 0 defaults to runtime.NumCPU(). messages holds up to
// 256 notifications; once that many are pending, every further send,
// including the Working send made while a job is submitted, blocks until
// the caller drains Messages().
func NewProcessor(workers int, logger *log.Helper) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Processor{
		messages: make(chan Message, 256),
		jobs:     make(chan func(), 256),
		log:      logger,
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Processor) worker() {
	for job := range p.jobs {
		job()
	}
}

// Messages returns the channel every Working/Finished/Error notification
// is delivered on. The caller is expected to drain it for the lifetime of
// the Processor.
func (p *Processor) Messages() <-chan Message {
	return p.messages
}

// Close stops accepting new jobs. It does not wait for in-flight jobs to
// finish; drain Messages() until the expected count arrives instead.
func (p *Processor) Close() {
	close(p.jobs)
}

func (p *Processor) send(msg Message) {
	select {
	case p.messages <- msg:
	default:
		// Messages is sized for ordinary batches; if it's genuinely full the
		// caller has stopped draining, so fall back to a blocking send rather
		// than drop a Finished/Error notification silently.
		p.messages <- msg
	}
}

// DatToYAML queues one DAT->YAML conversion. It reports Working
// synchronously before returning, matching DatProcessor::dat_to_yaml's
// send-before-execute ordering.
func (p *Processor) DatToYAML(desc DatDescriptor, ctx *Context, rawRoot string) {
	p.send(Message{Descriptor: desc, Output: OutputYaml, State: StateWorking})
	p.jobs <- func() {
		if err := desc.DatToYAML(ctx, rawRoot); err != nil {
			if p.log != nil {
				p.log.Errorf("processor: dat_to_yaml %s: %v", desc, err)
			}
			p.send(Message{Descriptor: desc, Output: OutputYaml, State: StateError, Err: err.Error()})
			return
		}
		p.send(Message{Descriptor: desc, Output: OutputYaml, State: StateFinished})
	}
}

// YAMLToDat queues one YAML->DAT conversion, mirroring
// DatProcessor::yaml_to_dat.
func (p *Processor) YAMLToDat(desc DatDescriptor, ctx *Context, rawRoot, datRoot string) {
	p.send(Message{Descriptor: desc, Output: OutputDat, State: StateWorking})
	p.jobs <- func() {
		if err := desc.YAMLToDat(ctx, rawRoot, datRoot); err != nil {
			if p.log != nil {
				p.log.Errorf("processor: yaml_to_dat %s: %v", desc, err)
			}
			p.send(Message{Descriptor: desc, Output: OutputDat, State: StateError, Err: err.Error()})
			return
		}
		p.send(Message{Descriptor: desc, Output: OutputDat, State: StateFinished})
	}
}

// AllDatToYAML walks every DAT known to ctx's Indexer-built Paths table,
// mapping each back to its DatDescriptor, and queues one DatToYAML job per
// descriptor. It returns the number of jobs queued, which a caller drains
// Messages() against.
//
// There is no descriptor for every DatId ctx.Paths carries — only the
// named/per-zone formats this module understands convert at all, so ids
// with no DatIdMapping entry are skipped rather than treated as an error,
// matching DatIdMapping's asymmetry between the full VTABLE/FTABLE index
// and the much smaller named-format surface.
func (p *Processor) AllDatToYAML(ctx *Context, rawRoot string) int {
	count := 0
	for name := range namedFormats {
		id, ok := ctx.Mapping.Lookup(name)
		if !ok {
			continue
		}
		if _, ok := ctx.Paths[id]; !ok {
			continue
		}
		p.DatToYAML(NamedDescriptor(name), ctx, rawRoot)
		count++
	}
	for zoneID := range ctx.ZoneNames {
		if id, ok := ctx.Mapping.LookupEntityNames(zoneID); ok {
			if _, ok := ctx.Paths[id]; ok {
				p.DatToYAML(EntityNamesDescriptor(zoneID), ctx, rawRoot)
				count++
			}
		}
		if id, ok := ctx.Mapping.LookupDialog(zoneID); ok {
			if _, ok := ctx.Paths[id]; ok {
				p.DatToYAML(DialogDescriptor(zoneID), ctx, rawRoot)
				count++
			}
		}
		if id, ok := ctx.Mapping.LookupDialog2(zoneID); ok {
			if _, ok := ctx.Paths[id]; ok {
				p.DatToYAML(Dialog2Descriptor(zoneID), ctx, rawRoot)
				count++
			}
		}
	}
	return count
}

// AllYAMLToDats walks rawRoot's YAML tree, maps every file DescriptorFromPath
// recognizes back to a DatDescriptor, and queues one YAMLToDat job per file
// against datRoot. It returns the number of jobs queued. Grounded on
// original_source's export_all_dats/make_all_dats, which walk the same tree
// with walkdir and filter_map DatDescriptor::from_path; unrecognized files
// are skipped rather than failing the batch, matching filter_map's drop
// of from_path's None case.
func (p *Processor) AllYAMLToDats(ctx *Context, rawRoot, datRoot string) int {
	count := 0
	_ = filepath.WalkDir(rawRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d == nil || d.IsDir() {
			return err
		}
		if filepath.Ext(path) != ".yml" {
			return nil
		}
		desc, ok := DescriptorFromPath(path, rawRoot, ctx)
		if !ok {
			if p.log != nil {
				p.log.Warnf("processor: no descriptor for %s, skipping", path)
			}
			return nil
		}
		p.YAMLToDat(desc, ctx, rawRoot, datRoot)
		count++
		return nil
	})
	return count
}
