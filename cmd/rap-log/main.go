// Command rap-log views and analyzes RAP protocol log files.
//
// Log files are written by rap-server and rap-client when started with the
// -protocol-log flag.
//
// Usage:
//
//	rap-log <command> [flags] <file.rlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON lines or CSV
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View only Naks for ReadSeq
//	rap-log view -opcode ReadSeqNak server.rlog
//
//	# Follow one transaction
//	rap-log view -txn 17 client.rlog
//
//	# Every rejected write to a read-only register
//	rap-log view -status read_only server.rlog
//
//	# Read a log from a pipe
//	ssh bench cat /var/log/rap/server.rlog | rap-log stats -
//
//	# Export to CSV
//	rap-log export -format csv -o session.csv server.rlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rap-protocol/rap-go/cmd/rap-log/commands"
)

const usage = `rap-log - RAP Protocol Log Analyzer

Usage:
  rap-log <command> [flags] <file.rlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON lines or CSV
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "rap-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the flags shared by view and filter.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	var o commands.FilterOptions
	fs.StringVar(&o.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&o.Endpoint, "endpoint", "", "Filter by local endpoint name")
	fs.StringVar(&o.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&o.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&o.Layer, "layer", "", "Filter by layer (transport, wire, service)")
	fs.StringVar(&o.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&o.Category, "category", "", "Filter by category (message, state, error)")
	fs.StringVar(&o.Opcode, "opcode", "", "Filter by opcode name or value (e.g. ReadSeqNak, 0xc3)")
	fs.StringVar(&o.Txn, "txn", "", "Filter by transaction ID")
	fs.StringVar(&o.Status, "status", "", "Filter by Nak or interrupt status (e.g. READ_ONLY, 5)")
	return &o
}

func parseFile(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "rap-log view - View log file in human-readable format\n\nUsage:\n  rap-log view [flags] <file.rlog>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	opts := filterFlags(fs)
	path := parseFile(fs, args)

	filter, err := opts.Build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "rap-log export - Export log file to JSON lines or CSV\n\nUsage:\n  rap-log export [flags] <file.rlog>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := parseFile(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "rap-log filter - Filter log file and write to new file\n\nUsage:\n  rap-log filter -o <out.rlog> [flags] <file.rlog>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path := parseFile(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, *output, *opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "rap-log stats - Show statistics about the log file\n\nUsage:\n  rap-log stats <file.rlog>\n")
	}
	path := parseFile(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
