package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gioui.org/app"
	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/vsariola/strum/cmd"
	"github.com/vsariola/strum/decode"
	"github.com/vsariola/strum/instrument"
	"github.com/vsariola/strum/instrument/gioui"
	"github.com/vsariola/strum/library"
	"github.com/vsariola/strum/oto"
	"github.com/vsariola/strum/version"
	"go.uber.org/zap"
)

var (
	configFile       = flag.String("config", "", "read instrument configuration from `file`")
	source           = flag.String("source", "", "name of the sample source, overrides the configuration")
	root             = flag.String("root", "", "sample root, a http(s) URL or a directory; overrides the configuration")
	defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
	debug            = flag.Bool("debug", false, "enable debug logging")
	versionFlag      = flag.Bool("v", false, "print version and exit")
)

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	logger, err := cmd.NewLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	config, err := instrument.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("could not load configuration", zap.String("file", *configFile), zap.Error(err))
	}
	if *source != "" {
		config.Source = *source
	}
	if *root != "" {
		config.SampleRoot = *root
	}
	if err := config.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	audioContext, err := oto.NewContext(0, logger)
	if err != nil {
		logger.Fatal("could not open audio", zap.Error(err))
	}
	src, err := library.OpenSource(config.SampleRoot, config.ManifestURL, config.AssetURL)
	if err != nil {
		logger.Fatal("could not open sample root", zap.String("root", config.SampleRoot), zap.Error(err))
	}
	decoder := &decode.Decoder{SampleRate: audioContext.SampleRate(), Quality: resample.QualityBalanced}
	lib := library.New(src, decoder, logger)
	broker := instrument.NewBroker()
	model, err := instrument.NewModel(config, broker, audioContext, nil, logger)
	if err != nil {
		logger.Fatal("could not create instrument", zap.Error(err))
	}
	midiContext := cmd.NewMIDIContext(broker, model, logger)
	if isFlagPassed("midi-input") {
		input, ok := instrument.FindMIDIInput(midiContext, *defaultMidiInput)
		if ok {
			if err := input.Open(); err != nil {
				logger.Warn("failed to open MIDI input", zap.Stringer("input", input), zap.Error(err))
			}
		} else {
			logger.Warn("no MIDI input device found", zap.String("prefix", *defaultMidiInput), zap.Stringer("support", midiContext.Support()))
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	model.LoadSamples(ctx, lib)
	view := gioui.NewView(model, logger)
	go func() {
		view.Main()
		cancel()
		midiContext.Close()
		if err := audioContext.Close(); err != nil {
			logger.Warn("closing audio failed", zap.Error(err))
		}
		logger.Sync()
		os.Exit(0)
	}()
	app.Main()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
