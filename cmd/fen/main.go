// Fen CLI - the main entry point for running Fen programs
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"github.com/fen-lang/fen/compiler"
	"github.com/fen-lang/fen/interp"
	"github.com/fen-lang/fen/manifest"
	"github.com/fen-lang/fen/session"

	_ "github.com/tliron/commonlog/simple"
)

// Exit codes follow the sysexits convention: 65 for malformed input,
// 70 for a runtime failure.
const (
	exitUsage   = 64
	exitDataErr = 65
	exitRuntime = 70
)

var log = commonlog.GetLogger("fen.cli")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	expr := flag.String("e", "", "Evaluate an expression and print its value")
	noHistory := flag.Bool("no-history", false, "Skip recording REPL history")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fen [options] [script.fen...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs Fen scripts, or starts a REPL when no script is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fen -i                  # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  fen script.fen          # Run a script\n")
		fmt.Fprintf(os.Stderr, "  fen -e '1 + 2'          # Evaluate and print\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	if m == nil {
		m = manifest.Default()
	} else {
		log.Infof("loaded manifest from %s", m.Dir)
	}

	in := interp.New()

	if *expr != "" {
		value, err := in.Run(*expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCodeFor(err))
		}
		fmt.Println(value.Render())
		os.Exit(0)
	}

	paths := flag.Args()
	if len(paths) == 0 && !*interactive {
		if entry := m.EntryPath(); entry != "" {
			paths = []string{entry}
		}
	}

	for _, path := range paths {
		if err := runFile(in, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCodeFor(err))
		}
	}

	if *interactive || len(paths) == 0 {
		runREPL(in, m, *noHistory)
	}
}

// exitCodeFor maps an error to its exit code: malformed source is a data
// error, everything surfacing from evaluation is a runtime failure.
func exitCodeFor(err error) int {
	var scanErr *compiler.ScanError
	var parseErr *compiler.ParseError
	if errors.As(err, &scanErr) || errors.As(err, &parseErr) {
		return exitDataErr
	}
	return exitRuntime
}

// runFile evaluates one script file.
func runFile(in *interp.Interp, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	log.Debugf("running %s (%d bytes)", path, len(src))

	start := time.Now()
	_, err = in.Run(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("finished %s in %s", path, time.Since(start))
	return nil
}

// runREPL starts an interactive read-eval-print loop.
func runREPL(in *interp.Interp, m *manifest.Manifest, noHistory bool) {
	fmt.Println("Fen REPL (type 'exit' to quit, ':help' for commands)")
	fmt.Println()

	var store *session.Store
	if !noHistory {
		var err error
		store, err = session.Open(m.Repl.History)
		if err != nil {
			log.Errorf("cannot open history %s: %v", m.Repl.History, err)
		} else {
			defer store.Close()
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(m.Repl.Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if strings.HasPrefix(line, ":") {
			handleREPLCommand(store, line)
			continue
		}

		evalAndRecord(in, store, line)
	}

	fmt.Println()
}

// handleREPLCommand handles REPL meta-commands.
func handleREPLCommand(store *session.Store, cmd string) {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":help", ":h", ":?":
		fmt.Println("REPL Commands:")
		fmt.Println("  :help, :h, :?     Show this help")
		fmt.Println("  :history [n]      Show the n most recent entries (default 10)")
		fmt.Println("  exit, quit        Exit REPL")
	case ":history":
		if store == nil {
			fmt.Println("History is disabled")
			return
		}
		limit := 10
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
				limit = n
			}
		}
		entries, err := store.Recent(limit)
		if err != nil {
			fmt.Printf("Cannot read history: %v\n", err)
			return
		}
		for _, e := range entries {
			marker := " "
			if e.IsError {
				marker = "!"
			}
			fmt.Printf("%4d%s %s\n", e.Seq, marker, e.Input)
		}
	default:
		fmt.Printf("Unknown command: %s (type :help for commands)\n", cmd)
	}
}

// evalAndRecord evaluates one input, prints the result, and appends the
// exchange to the history store.
func evalAndRecord(in *interp.Interp, store *session.Store, input string) {
	value, err := in.Run(input)

	var output string
	if err != nil {
		output = err.Error()
		fmt.Printf("Error: %s\n", output)
	} else {
		output = value.Render()
		if !value.IsNil() {
			fmt.Println(output)
		}
	}

	if store != nil {
		entry := &session.Entry{
			At:      time.Now().UTC(),
			Input:   input,
			Output:  output,
			IsError: err != nil,
		}
		if _, err := store.Append(entry); err != nil {
			log.Errorf("cannot record history: %v", err)
		}
	}
}
