// Package interactive provides the interactive command-line interface
// for rap-client.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/rap-protocol/rap-go/internal/cli"
	"github.com/rap-protocol/rap-go/pkg/client"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// ErrExit is returned by Exec for the exit command.
var ErrExit = errors.New("exit")

// Shell executes register commands against a target.
type Shell struct {
	f   *client.Fluent
	out io.Writer

	mu sync.Mutex
	rl *readline.Instance
}

// New creates a shell writing results to out.
func New(f *client.Fluent, out io.Writer) *Shell {
	return &Shell{f: f, out: out}
}

// Stdout returns a writer that properly coordinates with the readline input.
// It is only valid during Run.
func (s *Shell) Stdout() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rl != nil {
		return s.rl.Stdout()
	}
	return s.out
}

// Run starts the interactive command loop. It returns when the user exits
// or ctx ends.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rap> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.mu.Lock()
	s.rl = rl
	s.mu.Unlock()
	s.out = rl.Stdout()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	s.f.WithContext(ctx).Reset()

	switch cmd {
	case "help", "?":
		s.printHelp()
		return nil
	case "exit", "quit", "q":
		return ErrExit
	case "read", "r":
		return s.cmdRead(args)
	case "write", "w":
		return s.cmdWrite(args)
	case "expect":
		return s.cmdExpect(args)
	case "rmw":
		return s.cmdRMW(args)
	case "seqread", "sr":
		return s.cmdSeqRead(args)
	case "seqwrite", "sw":
		return s.cmdSeqWrite(args)
	case "fiforead", "fr":
		return s.cmdFifoRead(args)
	case "fifowrite", "fw":
		return s.cmdFifoWrite(args)
	case "compread", "cr":
		return s.cmdCompRead(args)
	case "compwrite", "cw":
		return s.cmdCompWrite(args)
	case "posted":
		return s.cmdPosted(args)
	case "limits":
		s.cmdLimits()
		return nil
	case "config":
		fmt.Fprintln(s.out, s.f.Target().Config())
		return nil
	default:
		return fmt.Errorf("unknown command: %s (type 'help')", cmd)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  read ADDR                     Read one register
  write ADDR VALUE              Write one register
  expect ADDR VALUE             Read and compare
  rmw ADDR VALUE MASK           Replace the bits selected by MASK
  seqread ADDR COUNT [INC]      Sequential read (INC defaults to 1)
  seqwrite ADDR INC VALUE...    Sequential write
  fiforead ADDR COUNT           Pop COUNT values from a FIFO
  fifowrite ADDR VALUE...       Push values to a FIFO
  compread ADDR...              Read scattered registers
  compwrite ADDR=VALUE...       Write scattered registers
  posted on|off                 Toggle posted writes
  limits                        Show per-message element limits
  config                        Show the configuration
  exit                          Leave`)
}

func (s *Shell) hex(v uint64) string {
	return fmt.Sprintf("0x%0*x", 2*s.f.Target().Config().DataBytes(), v)
}

func (s *Shell) printValues(addrs, values []uint64) {
	for i, v := range values {
		fmt.Fprintf(s.out, "  0x%x: %s\n", addrs[i], s.hex(v))
	}
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func parseAll(args []string) ([]uint64, error) {
	return cli.ParseValues(strings.Join(args, " "))
}

func (s *Shell) cmdRead(args []string) error {
	if err := need(args, 1, "read ADDR"); err != nil {
		return err
	}
	addr, err := cli.ParseUint(args[0])
	if err != nil {
		return err
	}
	var v uint64
	if err := s.f.Read(addr, &v).Err(); err != nil {
		return err
	}
	s.printValues([]uint64{addr}, []uint64{v})
	return nil
}

func (s *Shell) cmdWrite(args []string) error {
	if err := need(args, 2, "write ADDR VALUE"); err != nil {
		return err
	}
	vs, err := parseAll(args[:2])
	if err != nil {
		return err
	}
	if err := s.f.Write(vs[0], vs[1]).Err(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "OK")
	return nil
}

func (s *Shell) cmdExpect(args []string) error {
	if err := need(args, 2, "expect ADDR VALUE"); err != nil {
		return err
	}
	vs, err := parseAll(args[:2])
	if err != nil {
		return err
	}
	if err := s.f.Expect(vs[0], vs[1]).Err(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "OK")
	return nil
}

func (s *Shell) cmdRMW(args []string) error {
	if err := need(args, 3, "rmw ADDR VALUE MASK"); err != nil {
		return err
	}
	vs, err := parseAll(args[:3])
	if err != nil {
		return err
	}
	if err := s.f.ReadModifyWrite(vs[0], vs[1], vs[2]).Err(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "OK")
	return nil
}

// strided returns the addresses touched by a sequential access.
func (s *Shell) strided(addr uint64, n int, inc uint64) []uint64 {
	mask := s.f.Target().Config().AddressMask()
	out := make([]uint64, n)
	for i := range out {
		out[i] = (addr + uint64(i)*inc) & mask
	}
	return out
}

func (s *Shell) cmdSeqRead(args []string) error {
	if err := need(args, 2, "seqread ADDR COUNT [INC]"); err != nil {
		return err
	}
	vs, err := parseAll(args)
	if err != nil {
		return err
	}
	inc := uint64(1)
	if len(vs) > 2 {
		inc = vs[2]
	}
	out := make([]uint64, vs[1])
	if err := s.f.SeqRead(vs[0], out, inc).Err(); err != nil {
		return err
	}
	s.printValues(s.strided(vs[0], len(out), inc), out)
	return nil
}

func (s *Shell) cmdSeqWrite(args []string) error {
	if err := need(args, 3, "seqwrite ADDR INC VALUE..."); err != nil {
		return err
	}
	vs, err := parseAll(args)
	if err != nil {
		return err
	}
	if err := s.f.SeqWrite(vs[0], vs[2:], vs[1]).Err(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "OK (%d values)\n", len(vs)-2)
	return nil
}

func (s *Shell) cmdFifoRead(args []string) error {
	if err := need(args, 2, "fiforead ADDR COUNT"); err != nil {
		return err
	}
	vs, err := parseAll(args[:2])
	if err != nil {
		return err
	}
	out := make([]uint64, vs[1])
	if err := s.f.FifoRead(vs[0], out).Err(); err != nil {
		return err
	}
	parts := make([]string, len(out))
	for i, v := range out {
		parts[i] = s.hex(v)
	}
	fmt.Fprintf(s.out, "  0x%x: [%s]\n", vs[0], strings.Join(parts, " "))
	return nil
}

func (s *Shell) cmdFifoWrite(args []string) error {
	if err := need(args, 2, "fifowrite ADDR VALUE..."); err != nil {
		return err
	}
	vs, err := parseAll(args)
	if err != nil {
		return err
	}
	if err := s.f.FifoWrite(vs[0], vs[1:]).Err(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "OK (%d values)\n", len(vs)-1)
	return nil
}

func (s *Shell) cmdCompRead(args []string) error {
	if err := need(args, 1, "compread ADDR..."); err != nil {
		return err
	}
	addrs, err := parseAll(args)
	if err != nil {
		return err
	}
	out := make([]uint64, len(addrs))
	if err := s.f.CompRead(addrs, out).Err(); err != nil {
		return err
	}
	s.printValues(addrs, out)
	return nil
}

func (s *Shell) cmdCompWrite(args []string) error {
	if err := need(args, 1, "compwrite ADDR=VALUE..."); err != nil {
		return err
	}
	pairs := make([]wire.AddrData, 0, len(args))
	for _, arg := range args {
		a, d, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid pair %q (want ADDR=VALUE)", arg)
		}
		vs, err := parseAll([]string{a, d})
		if err != nil {
			return err
		}
		pairs = append(pairs, wire.AddrData{Addr: vs[0], Data: vs[1]})
	}
	if err := s.f.CompWrite(pairs).Err(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "OK (%d pairs)\n", len(pairs))
	return nil
}

func (s *Shell) cmdPosted(args []string) error {
	if err := need(args, 1, "posted on|off"); err != nil {
		return err
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		s.f.Posted(true)
	case "off", "false", "0":
		s.f.Posted(false)
	default:
		return fmt.Errorf("usage: posted on|off")
	}
	fmt.Fprintf(s.out, "Posted writes: %s\n", strings.ToLower(args[0]))
	return nil
}

func (s *Shell) cmdLimits() {
	sd := s.f.Target().Serdes()
	fmt.Fprintf(s.out, "Max message size:  %d\n", sd.MaxMessageSize())
	fmt.Fprintf(s.out, "Seq read count:    %d\n", sd.MaxSeqReadCount())
	fmt.Fprintf(s.out, "Seq write count:   %d\n", sd.MaxSeqWriteCount())
	fmt.Fprintf(s.out, "Comp read count:   %d\n", sd.MaxCompReadCount())
	fmt.Fprintf(s.out, "Comp write count:  %d\n", sd.MaxCompWriteCount())
}
