package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/pool/alloc"
)

func init() {
	rootCmd.AddCommand(newShellCmd())
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Drive a pool interactively",
		Long: `The shell command creates a pool and reads allocator commands from
standard input, one per line. Allocations get a numeric handle used to free
them later.

Example:
  poolctl shell --size 64K
  > alloc 100
  > alloc 2000
  > free 1
  > stats
  > quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}
}

// shellState tracks the live allocations of one interactive session.
type shellState struct {
	a       *alloc.Allocator
	handles map[int]alloc.Ref
	nextID  int
}

func runShell() error {
	p, a, err := openPool()
	if err != nil {
		return err
	}
	defer a.Destroy()

	st := &shellState{a: a, handles: make(map[int]alloc.Ref), nextID: 1}
	printInfo("Pool %q ready (%s bytes). Type 'help' for commands.\n",
		p.Name(), prt.Sprintf("%d", p.TotalSize()))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if done := st.dispatch(fields[0], fields[1:]); done {
			break
		}
	}
	return scanner.Err()
}

// dispatch runs one shell command. Returns true when the session is over.
func (st *shellState) dispatch(cmd string, args []string) bool {
	switch cmd {
	case "alloc":
		st.cmdAlloc(args)
	case "free":
		st.cmdFree(args)
	case "stats":
		if err := printStats(st.a); err != nil {
			printError("%v\n", err)
		}
	case "layout":
		if err := printLayout(st.a); err != nil {
			printError("%v\n", err)
		}
	case "validate":
		if err := st.a.Validate(); err != nil {
			printError("validation failed: %v\n", err)
		} else {
			printInfo("Pool is valid.\n")
		}
	case "help":
		st.cmdHelp()
	case "quit", "exit":
		return true
	default:
		printError("unknown command %q, try 'help'\n", cmd)
	}
	return false
}

func (st *shellState) cmdAlloc(args []string) {
	if len(args) != 1 {
		printError("usage: alloc <size>\n")
		return
	}
	size, err := parseSize(args[0])
	if err != nil {
		printError("%v\n", err)
		return
	}

	ref, buf, err := st.a.Alloc(size)
	if err != nil {
		printError("alloc failed: %v\n", err)
		return
	}
	id := st.nextID
	st.nextID++
	st.handles[id] = ref
	printInfo("#%d: %d bytes at offset %d\n", id, len(buf), ref)
}

func (st *shellState) cmdFree(args []string) {
	if len(args) != 1 {
		printError("usage: free <handle>\n")
		return
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		printError("invalid handle %q\n", args[0])
		return
	}
	ref, ok := st.handles[id]
	if !ok {
		printError("no allocation #%d\n", id)
		return
	}

	if err := st.a.Free(ref); err != nil {
		printError("free failed: %v\n", err)
		return
	}
	delete(st.handles, id)
	printInfo("freed #%d\n", id)
}

func (st *shellState) cmdHelp() {
	printInfo(`Commands:
  alloc <size>   allocate size bytes (K/M/G suffixes accepted)
  free <handle>  free a previous allocation by its #handle
  stats          show usage counters
  layout         dump the physical block chain
  validate       run a full structural check
  help           show this help
  quit           free nothing further and destroy the pool
`)
}
