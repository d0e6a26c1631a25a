// Command smfplay is a demo host: it implements this module's Host
// Services collaborators over the real OS and plays each given SMF
// file serially through a meltysynth software synthesizer and
// ebitengine's audio output, grounded on zurustar-son-et's
// pkg/engine/midi_player.go pairing of the two.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/zurustar/smfplayer/internal/config"
	"github.com/zurustar/smfplayer/internal/host"
	"github.com/zurustar/smfplayer/internal/scheduler"
	"github.com/zurustar/smfplayer/internal/smf"
	"github.com/zurustar/smfplayer/internal/telemetry"
)

const sampleRate = 44100

func main() {
	soundFontPath := flag.String("soundfont", "", "path to a .sf2 SoundFont file")
	configPath := flag.String("config", "", "optional INI file overriding resource limits")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	logger, err := telemetry.Init(*logLevel, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printer := host.NewSlogPrinter(logger)

	if *soundFontPath == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: smfplay -soundfont <file.sf2> <file.mid> [file.mid ...]")
		os.Exit(1)
	}

	limits := smf.DefaultLimits()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			printer.Warning("config: %v", err)
		}
		limits = loaded
	}

	sfBytes, err := os.ReadFile(*soundFontPath)
	if err != nil {
		printer.Error("reading soundfont: %v", err)
		os.Exit(1)
	}
	soundFont, err := meltysynth.NewSoundFont(bytes.NewReader(sfBytes))
	if err != nil {
		printer.Error("parsing soundfont: %v", err)
		os.Exit(1)
	}

	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	audioCtx := audio.NewContext(sampleRate)
	fs := host.NewRealFileSystem()

	exitCode := 0
	for _, path := range flag.Args() {
		if err := playFile(fs, path, soundFont, settings, audioCtx, limits, printer); err != nil {
			printer.Error("%s: %v", path, err)
			exitCode = 1
			continue
		}
		printer.Success("%s: finished", path)
	}
	os.Exit(exitCode)
}

func playFile(
	fs host.FileSystem,
	path string,
	soundFont *meltysynth.SoundFont,
	settings *meltysynth.SynthesizerSettings,
	audioCtx *audio.Context,
	limits smf.Limits,
	printer host.Printer,
) error {
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return fmt.Errorf("creating synthesizer: %w", err)
	}
	bridge := &synthBridge{synth: synth}

	callbacks := scheduler.CallbackTable{
		OnNoteOff: func(_ int, _ int64, channel, note, velocity int, _ any) {
			bridge.process(channel, cmdNoteOff, note, velocity)
		},
		OnNoteOn: func(_ int, _ int64, channel, note, velocity int, _ any) {
			bridge.process(channel, cmdNoteOn, note, velocity)
		},
		OnNoteKeyPressure: func(_ int, _ int64, channel, note, pressure int, _ any) {
			bridge.process(channel, cmdNoteKeyPressure, note, pressure)
		},
		OnControlChange: func(_ int, _ int64, channel, controller, value int, _ any) {
			bridge.process(channel, cmdControlChange, controller, value)
		},
		OnProgramChange: func(_ int, _ int64, channel, program int, _ any) {
			bridge.process(channel, cmdProgramChange, program, 0)
		},
		OnChannelPressure: func(_ int, _ int64, channel, pressure int, _ any) {
			bridge.process(channel, cmdChannelPressure, pressure, 0)
		},
		OnPitchWheel: func(_ int, _ int64, channel int, value int16, _ any) {
			v := int(value) + 8192
			bridge.process(channel, cmdPitchWheel, v&0x7F, (v>>7)&0x7F)
		},
		OnSetTempo: func(trackIdx int, _ int64, bpm float64, _ any) {
			printer.Info("track %d: tempo -> %.1f BPM", trackIdx, bpm)
		},
		OnTrackName: func(trackIdx int, _ int64, text []byte, _ any) {
			printer.Info("track %d: name %q", trackIdx, trimNul(text))
		},
		OnLyric: func(trackIdx int, _ int64, text []byte, _ any) {
			printer.Info("track %d: lyric %q", trackIdx, trimNul(text))
		},
	}

	clock := host.NewRealClock()
	session := scheduler.New(limits, clock, printer, callbacks)

	file, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.OpenFile(file); err != nil {
		return err
	}

	stream := newMIDIStream(synth)
	player, err := audioCtx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("creating audio player: %w", err)
	}
	defer player.Close()
	player.Play()

	for session.Tick() {
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

func trimNul(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
