// Command smfdump parses a Standard MIDI File with the real
// gitlab.com/gomidi/midi/v2/smf library and prints one line per event,
// independent of this module's own streaming decoder. It exists to
// cross-check the hand-rolled decoder's output against a trusted
// third-party implementation, mirroring the relationship mididump.c
// has to midifile.c in the library this module descends from.
package main

import (
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: smfdump <file.mid> [file.mid ...]")
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range os.Args[1:] {
		if err := dump(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s%s: %v%s\n", ansiRed, path, err, ansiReset)
			exitCode = 1
			continue
		}
		fmt.Printf("%s%s: ok%s\n", ansiGreen, path, ansiReset)
	}
	os.Exit(exitCode)
}

func dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	s, err := smf.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	ppq := 0
	if metric, ok := s.TimeFormat.(smf.MetricTicks); ok {
		ppq = int(metric.Ticks4th())
	}
	fmt.Printf("format=%d tracks=%d ppq=%d\n", s.Format(), len(s.Tracks), ppq)

	for trackIdx, track := range s.Tracks {
		absTick := int64(0)
		for _, ev := range track {
			absTick += int64(ev.Delta)

			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				fmt.Printf("  track=%d tick=%d tempo bpm=%.2f\n", trackIdx, absTick, bpm)
				continue
			}
			if ev.Message.IsMeta() {
				fmt.Printf("  track=%d tick=%d meta %s\n", trackIdx, absTick, ev.Message)
				continue
			}
			if ev.Message.IsPlayable() {
				fmt.Printf("  track=%d tick=%d msg %s\n", trackIdx, absTick, ev.Message)
			}
		}
	}
	return nil
}
