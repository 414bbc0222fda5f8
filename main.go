// Command c8 executes CHIP-8 programs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/nf/c8/chip8"
	"github.com/nf/c8/host"
)

func main() {
	log.SetPrefix("c8: ")
	log.SetFlags(0)

	var (
		guiFlag   = flag.Bool("gui", false, "display in a window instead of the terminal")
		muteFlag  = flag.Bool("mute", false, "disable sound")
		watchFlag = flag.Bool("watch", false, "restart the program when its file changes")
		rateFlag  = flag.Int("rate", host.DefaultRate, "instructions executed per `second`")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-gui] [-mute] [-watch] [-rate n] <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	if *rateFlag < host.TickDivisor {
		log.Fatalf("rate must be at least %d", host.TickDivisor)
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(flag.Arg(0), options{
		gui:   *guiFlag,
		mute:  *muteFlag,
		watch: *watchFlag,
		rate:  *rateFlag,
	})

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

type options struct {
	gui, mute, watch bool
	rate             int
}

func run(progFile string, opt options) error {
	prog, err := loadProgram(progFile)
	if err != nil {
		return err
	}
	m := chip8.NewMachine(prog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var spk host.Speaker = host.Silent{}
	if !opt.mute {
		if b, err := host.NewBeeper(); err != nil {
			log.Printf("audio: %v", err)
			spk = nil // fall back to the terminal bell
		} else {
			defer b.Close()
			spk = b
		}
	}

	start := func(r *host.Runner) error {
		r.Rate = opt.rate
		if opt.watch {
			go func() {
				if err := watch(ctx, progFile, r); err != nil {
					log.Printf("watch: %v", err)
				}
			}()
		}
		return r.Run(ctx)
	}

	if opt.gui {
		if spk == nil {
			spk = host.Silent{}
		}
		return host.RunGUI("c8 "+progFile, func(g *host.GUI) error {
			return start(host.NewRunner(m, g, spk, g))
		})
	}

	t, err := host.NewTerminal()
	if err != nil {
		return fmt.Errorf("terminal: %v", err)
	}
	var backlog host.Backlog
	log.SetOutput(&backlog)
	defer func() {
		t.Close()
		log.SetOutput(os.Stderr)
		backlog.Emit(os.Stderr)
	}()
	if spk == nil {
		spk = t
	}
	return start(host.NewRunner(m, t, spk, t))
}
