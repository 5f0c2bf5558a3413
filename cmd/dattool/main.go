// Copyright 2026 The Vana'diel DAT Tools Authors.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Command dattool converts between a Vana'diel client install's DAT files
// and a human-editable YAML tree. It is a thin wiring layer around
// the dattool package's Indexer, Processor and DatDescriptor: command bodies
// build a Context, hand work to a Processor, and render progress while
// draining its message channel.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	dat "github.com/vanadiel/dattool"
	"github.com/vanadiel/dattool/internal/log"
)

// Project layout conventions, matching original_source's main.rs constants.
const (
	rawDataDir  = "raw_data"
	datOutDir   = "generated_dats"
	defaultWork = 0 // let Processor pick runtime.NumCPU()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dattool:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dattool",
		Short: "Round-trip Vana'diel DAT assets to and from YAML",
	}
	root.AddCommand(newReindexCmd())
	root.AddCommand(newDatToYAMLCmd())
	root.AddCommand(newYAMLToDatCmd())
	root.AddCommand(newAllYAMLToDatCmd())
	root.AddCommand(newAllDatToYAMLCmd())
	root.AddCommand(newCopyLookupTablesCmd())
	root.AddCommand(newExportDatsCmd())
	return root
}

func newLogger() *log.Helper {
	return log.NewHelper(log.NewStdLogger(os.Stderr))
}

func buildContext(installRoot string) (*dat.Context, error) {
	ix := dat.NewIndexer(installRoot, newLogger())
	return ix.Build(context.Background())
}

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex <install-root>",
		Short: "Scan an install's VTABLE/FTABLE pairs and report how many DatIds resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("indexed %d DatId(s), %d zone(s)\n", len(ctx.Paths), len(ctx.ZoneNames))
			return nil
		},
	}
}

func newDatToYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dat2yaml <install-root> <name> <out-raw-dir>",
		Short: "Convert one named (zone-independent) DAT to YAML; per-zone DATs are not accepted",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext(args[0])
			if err != nil {
				return err
			}
			if _, ok := ctx.Mapping.Lookup(args[1]); !ok {
				return fmt.Errorf("unrecognized named format %q", args[1])
			}
			return dat.NamedDescriptor(args[1]).DatToYAML(ctx, args[2])
		},
	}
}

func newYAMLToDatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yaml2dat <install-root> <raw-root> <yaml-path> <out-dat-dir>",
		Short: "Convert one edited YAML file back to its DAT",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext(args[0])
			if err != nil {
				return err
			}
			rawRoot, yamlPath, outDir := args[1], args[2], args[3]
			desc, ok := dat.DescriptorFromPath(yamlPath, rawRoot, ctx)
			if !ok {
				return fmt.Errorf("could not map %s (under %s) to a known DAT format", yamlPath, rawRoot)
			}
			return desc.YAMLToDat(ctx, rawRoot, outDir)
		},
	}
}

func newAllYAMLToDatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all-yaml2dat <install-root> <project-dir>",
		Short: "Convert every edited YAML file under <project-dir>/raw_data back to DATs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext(args[0])
			if err != nil {
				return err
			}
			rawRoot := filepath.Join(args[1], rawDataDir)
			outRoot := filepath.Join(args[1], datOutDir)
			return drainBatch(ctx, "Generating DATs", func(proc *dat.Processor) int {
				return proc.AllYAMLToDats(ctx, rawRoot, outRoot)
			})
		},
	}
}

func newAllDatToYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all-dat2yaml <install-root> <out-raw-dir>",
		Short: "Convert every known DAT in the install to YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext(args[0])
			if err != nil {
				return err
			}
			return drainBatch(ctx, "Converting DATs to YAML", func(proc *dat.Processor) int {
				return proc.AllDatToYAML(ctx, args[1])
			})
		},
	}
}

func newCopyLookupTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy-lookup-tables <install-root> <project-dir>",
		Short: "Mirror the install's VTABLE/FTABLE files and zone table into <project-dir>/lookup_tables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := buildContext(args[0])
			if err != nil {
				return err
			}
			return dat.CopyLookupTables(ctx, args[1])
		},
	}
}

func newExportDatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-dats <project-dir>",
		Short: "Generate DATs from <project-dir>/raw_data using the project's lookup_tables mirror, without a live install",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := dat.BuildContextFromLookupTables(args[0], newLogger())
			if err != nil {
				return err
			}
			rawRoot := filepath.Join(args[0], rawDataDir)
			outRoot := filepath.Join(args[0], datOutDir)
			return drainBatch(ctx, "Generating DATs", func(proc *dat.Processor) int {
				return proc.AllYAMLToDats(ctx, rawRoot, outRoot)
			})
		},
	}
}

// drainBatch starts a Processor, queues work via queue, and drains its
// message channel until every queued job has reported Finished or Error,
// rendering a spinner meanwhile. The first Error aborts the whole batch,
// matching original_source's export_all_dats, which treats any
// DatProcessingState::Error as fatal rather than continuing past it.
func drainBatch(ctx *dat.Context, label string, queue func(*dat.Processor) int) error {
	proc := dat.NewProcessor(defaultWork, newLogger())
	defer proc.Close()

	total := queue(proc)
	fmt.Printf("%s: %d job(s)\n", label, total)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Prefix = label + "... "
	s.Start()
	defer s.Stop()

	finished := 0
	for finished < total {
		msg := <-proc.Messages()
		switch msg.State {
		case dat.StateWorking:
		case dat.StateFinished:
			finished++
		case dat.StateError:
			return fmt.Errorf("processing %s: %s", msg.Descriptor, msg.Err)
		}
	}
	return nil
}
