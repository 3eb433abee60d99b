package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// clicker plays a short tone when the player lands. Without a working
// audio device it stays silent.
type clicker struct {
	enabled bool
}

func newClicker(enabled bool) (*clicker, error) {
	c := &clicker{}
	if !enabled {
		return c, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.enabled = true
	return c, nil
}

// click plays a tone whose pitch rises with the landing speed.
func (c *clicker) click(speed float64) {
	if !c.enabled {
		return
	}
	freq := 220 + 40*speed
	if freq > 1760 {
		freq = 1760
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

func (c *clicker) close() {
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}
