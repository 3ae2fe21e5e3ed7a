// Command chipi runs CHIP-8 ROMs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/chipi/emulator"
)

func main() {
	log.SetPrefix("chipi: ")
	log.SetFlags(0)

	def := emulator.DefaultConfig()
	var (
		cliFlag   = flag.Bool("cli", false, "run in the terminal instead of a window")
		watchFlag = flag.Bool("watch", false, "reload the ROM when it changes and keep running after a halt")
		speedFlag = flag.Int("speed", def.CyclesPerFrame, "instructions executed per frame")
		fpsFlag   = flag.Int("fps", def.FPS, "frames per second")
		scaleFlag = flag.Int("scale", def.Scale, "window and screenshot `pixels` per CHIP-8 pixel")
		fgFlag    = flag.String("fg", "white", "`colour` of lit pixels")
		bgFlag    = flag.String("bg", "black", "`colour` of unlit pixels")
		seedFlag  = flag.Uint64("seed", 0, "random number `seed` (0 picks one at random)")
		traceFlag = flag.Bool("trace", false, "log recent instructions when the machine halts")
		shotFlag  = flag.String("screenshot", "", "write the final display to `file` as a PNG")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	palette, err := emulator.ParsePalette(*fgFlag, *bgFlag)
	if err != nil {
		log.Fatal(err)
	}
	cfg := emulator.Config{
		CyclesPerFrame: *speedFlag,
		FPS:            *fpsFlag,
		Seed:           *seedFlag,
		Trace:          *traceFlag,
		Scale:          *scaleFlag,
		Palette:        palette,
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

	err = run(flag.Arg(0), cfg, !*cliFlag, *watchFlag, *shotFlag)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(romFile string, cfg emulator.Config, guiEnabled, watch bool, screenshot string) error {
	rom, err := emulator.ReadROM(romFile)
	if err != nil {
		return err
	}
	e := emulator.New(cfg)
	if err := e.Load(rom); err != nil {
		return err
	}
	log.Printf("load %s (%d bytes)", rom.Title, len(rom.Data))

	r := emulator.NewRunner(e, watch)
	r.Start()
	if watch {
		stop := make(chan bool)
		defer close(stop)
		go func() {
			if err := watchROM(romFile, r, stop); err != nil {
				log.Printf("watch: %v", err)
			}
		}()
	}

	if guiEnabled {
		err = emulator.NewGUI(r, rom.Title).Run()
	} else {
		err = runTerminal(r, rom.Title)
	}
	if haltErr := r.Stop(); err == nil {
		err = haltErr
	}

	if screenshot != "" {
		if f, ok := r.LastFrame(); ok {
			if err := emulator.SaveScreenshot(screenshot, f.Image, cfg.Scale); err != nil {
				log.Print(err)
			}
		}
	}
	return err
}
