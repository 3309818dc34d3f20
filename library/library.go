// Package library loads the samples of an instrument: it asks a source for
// the manifest, fetches every listed file concurrently, decodes them and
// hands back either all of them in manifest order or nothing at all.
package library

import (
	"context"
	"errors"

	"github.com/vsariola/strum"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type (
	// ManifestSource lists the sample files of a source.
	ManifestSource interface {
		Manifest(ctx context.Context, source string) (strum.Manifest, error)
	}

	// AssetSource retrieves the bytes of one sample file.
	AssetSource interface {
		Fetch(ctx context.Context, source, name string) ([]byte, error)
	}

	Source interface {
		ManifestSource
		AssetSource
	}

	Decoder interface {
		Decode(name string, data []byte) (*strum.Sample, error)
	}

	Library struct {
		Source  Source
		Decoder Decoder
		// Concurrency limits the number of files fetched and decoded at the
		// same time. Zero or negative means no limit.
		Concurrency int
		Logger      *zap.Logger
	}
)

func New(source Source, decoder Decoder, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{Source: source, Decoder: decoder, Logger: logger}
}

// Load returns the decoded samples of source in manifest order, together with
// the manifest. If any file cannot be fetched or decoded, the remaining work
// is cancelled and no samples are returned. The error is a
// *strum.ManifestError, *strum.AssetFetchError or *strum.DecodeError.
func (l *Library) Load(ctx context.Context, source string) ([]*strum.Sample, strum.Manifest, error) {
	log := l.logger().With(zap.String("source", source))
	manifest, err := l.Source.Manifest(ctx, source)
	if err != nil {
		return nil, strum.Manifest{}, asManifestError(source, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, manifest, &strum.ManifestError{Source: source, Err: err}
	}
	log.Debug("manifest received", zap.Int("files", len(manifest.Files)))
	samples := make([]*strum.Sample, len(manifest.Files))
	g, gctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, name := range manifest.Files {
		g.Go(func() error {
			data, err := l.Source.Fetch(gctx, source, name)
			if err != nil {
				var fe *strum.AssetFetchError
				if errors.As(err, &fe) {
					return err
				}
				return &strum.AssetFetchError{Source: source, Name: name, Err: err}
			}
			sample, err := l.Decoder.Decode(name, data)
			if err != nil {
				var de *strum.DecodeError
				if errors.As(err, &de) {
					return err
				}
				return &strum.DecodeError{Name: name, Err: err}
			}
			samples[i] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, manifest, err
	}
	log.Info("samples loaded", zap.Int("count", len(samples)))
	return samples, manifest, nil
}

// LoadSet loads the samples of source and partitions them over numStrings
// strings. The per-string counts come from the manifest when it has them;
// otherwise every string gets perString samples (or an even share when
// perString is zero). A mismatch is reported as a *strum.ManifestError
// wrapping strum.ErrSampleCount.
func (l *Library) LoadSet(ctx context.Context, source string, numStrings, perString int) (strum.SampleSet, error) {
	samples, manifest, err := l.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	counts, err := manifest.StringCounts(numStrings, perString)
	if err != nil {
		return nil, &strum.ManifestError{Source: source, Err: err}
	}
	set, err := strum.NewSampleSet(samples, counts)
	if err != nil {
		return nil, &strum.ManifestError{Source: source, Err: err}
	}
	return set, nil
}

func (l *Library) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func asManifestError(source string, err error) error {
	var me *strum.ManifestError
	if errors.As(err, &me) {
		return err
	}
	return &strum.ManifestError{Source: source, Err: err}
}
