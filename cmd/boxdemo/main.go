// Command boxdemo runs a box world in the terminal.
//
// Arrow keys or a/d push the player, space or w jumps while it stands on
// something. With -steps the world runs headless for that many steps.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/vova616/boxworld/vect"
)

var (
	scenePath = flag.String("scene", "", "scene YAML file (built-in scene when empty)")
	logPath   = flag.String("log", "", "write the log to this file")
	dumpPath  = flag.String("dump", "", "write one JSON line of body state per step to this file (- for stdout)")
	steps     = flag.Int("steps", 0, "run this many steps without a terminal and exit")
	fps       = flag.Int("fps", 60, "simulation steps per second")
	mute      = flag.Bool("mute", false, "disable the landing sound")
)

type game struct {
	screen tcell.Screen
	lv     *level
	r      *renderer
	pc     controller
	sound  *clicker
	dump   *dumper
	dt     vect.Float
	paused bool
}

func (g *game) step(now time.Time) {
	g.pc.apply(g.lv.Player(), now)
	g.lv.world.Step(g.dt)

	if speed, ok := g.pc.landed(g.lv.Player()); ok {
		g.sound.click(float64(speed))
	}

	if g.dump != nil {
		if err := g.dump.write(g.lv); err != nil {
			log.Printf("dump: %v", err)
			g.dump = nil
		}
	}
}

// handleInput returns false when the game should quit.
func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if g.pc.handleKey(ev, time.Now()) {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				g.paused = !g.paused
			case 'n':
				if g.paused {
					g.step(time.Now())
				}
			case 'r':
				if err := g.lv.reset(); err != nil {
					log.Printf("reset: %v", err)
				}
				g.pc = newController(g.lv.Player())
				g.r.frame(g.lv)
			}
		}

	case *tcell.EventResize:
		g.r.resize()
	}

	return true
}

func (g *game) run() {
	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			if !g.paused {
				g.step(now)
			}
			g.r.draw(g.lv, g.paused)
		}
	}
}

func runHeadless(g *game, n int) {
	start := time.Now()
	var solve time.Duration
	for i := 0; i < n; i++ {
		g.step(start)
		solve += g.lv.world.StepTime
	}
	log.Printf("%d steps, %d bodies, %d arbiters, %v in Step", n, g.lv.world.NumBodies(), g.lv.world.ArbiterCount(), solve)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func main() {
	flag.Parse()

	if *fps <= 0 {
		fmt.Fprintf(os.Stderr, "-fps must be positive\n")
		os.Exit(2)
	}

	// the terminal belongs to the renderer
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if *steps == 0 {
		log.SetOutput(io.Discard)
	}

	sc, err := loadScene(*scenePath)
	if err != nil {
		log.Fatal(err)
	}
	lv, err := newLevel(sc)
	if err != nil {
		log.Fatal(err)
	}

	g := &game{lv: lv, pc: newController(lv.Player()), dt: 1 / vect.Float(*fps)}

	if *dumpPath != "" {
		out, err := openOutput(*dumpPath)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
		g.dump = newDumper(out)
	}

	g.sound, err = newClicker(!*mute && *steps == 0)
	if err != nil {
		// Non-fatal, the demo runs without sound
		log.Printf("Audio initialization failed: %v", err)
	}
	defer g.sound.close()

	if *steps > 0 {
		runHeadless(g, *steps)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g.screen = screen
	g.r = newRenderer(screen)
	g.r.frame(lv)
	g.run()
}
