package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pool/alloc"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted allocator exercise",
		Long: `The demo command runs a fixed allocation workload against a fresh
pool: a spread of block sizes, pattern writes, partial frees to force
coalescing, and reallocation into the recovered space. Statistics and a
structural validation are printed at each stage.

Example:
  poolctl demo --size 64K --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	_, a, err := openPool()
	if err != nil {
		return err
	}
	defer a.Destroy()

	// Stage 1: a spread of sizes from tiny to a few KiB.
	sizes := []int{16, 32, 64, 128, 256, 512, 1024, 2048}
	refs := make([]alloc.Ref, 0, len(sizes))
	bufs := make([][]byte, 0, len(sizes))

	printInfo("Stage 1: allocating %d blocks\n", len(sizes))
	for i, size := range sizes {
		ref, buf, err := a.Alloc(size)
		if err != nil {
			return fmt.Errorf("alloc %d bytes: %w", size, err)
		}
		for j := range buf {
			buf[j] = byte(i)
		}
		refs = append(refs, ref)
		bufs = append(bufs, buf)
		printVerbose("  %4d bytes at offset %d\n", len(buf), ref)
	}
	if err := stageCheck(a); err != nil {
		return err
	}

	// Stage 2: free every other block, punching holes into the arena.
	printInfo("Stage 2: freeing every other block\n")
	for i := 0; i < len(refs); i += 2 {
		if err := a.Free(refs[i]); err != nil {
			return fmt.Errorf("free block %d: %w", i, err)
		}
	}
	if err := stageCheck(a); err != nil {
		return err
	}

	// Stage 3: the surviving payloads are intact, and the holes serve
	// fresh allocations.
	printInfo("Stage 3: reallocating into the holes\n")
	for i := 1; i < len(bufs); i += 2 {
		for j, b := range bufs[i] {
			if b != byte(i) {
				return fmt.Errorf("payload %d corrupted at byte %d", i, j)
			}
		}
	}
	reused := make([]alloc.Ref, 0, len(sizes)/2)
	for i := 0; i < len(sizes); i += 2 {
		ref, _, err := a.Alloc(sizes[i])
		if err != nil {
			return fmt.Errorf("realloc %d bytes: %w", sizes[i], err)
		}
		reused = append(reused, ref)
	}
	if err := stageCheck(a); err != nil {
		return err
	}

	// Stage 4: drain everything and confirm the arena recovers whole.
	printInfo("Stage 4: draining the pool\n")
	for i := 1; i < len(refs); i += 2 {
		if err := a.Free(refs[i]); err != nil {
			return fmt.Errorf("free block %d: %w", i, err)
		}
	}
	for _, ref := range reused {
		if err := a.Free(ref); err != nil {
			return fmt.Errorf("free reused block: %w", err)
		}
	}
	if err := stageCheck(a); err != nil {
		return err
	}

	st := a.Stats()
	if st.UsedSize != 0 || st.BlockCount != 1 {
		return fmt.Errorf("pool did not recover: %d bytes used in %d blocks",
			st.UsedSize, st.BlockCount)
	}
	printInfo("Demo complete: %s allocations, arena fully recovered.\n",
		prt.Sprintf("%d", st.Allocations))
	return nil
}

// stageCheck validates the pool and prints statistics between demo stages.
func stageCheck(a *alloc.Allocator) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if verbose {
		return printStats(a)
	}
	return nil
}
