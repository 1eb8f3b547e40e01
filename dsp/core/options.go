package core

// StreamConfig defines how a sample stream is cut into analysis blocks.
type StreamConfig struct {
	// BlockSize is the number of mono samples handed to an analyser per call.
	BlockSize int
	// Channels is the interleaved channel count of the source.
	Channels int
}

// StreamOption mutates a StreamConfig.
type StreamOption func(*StreamConfig)

// DefaultStreamConfig returns mono input cut into blocks of 128 samples.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		BlockSize: 128,
		Channels:  1,
	}
}

// WithBlockSize sets the analysis block size.
func WithBlockSize(blockSize int) StreamOption {
	return func(cfg *StreamConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithChannels sets the interleaved channel count of the source.
func WithChannels(channels int) StreamOption {
	return func(cfg *StreamConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyStreamOptions applies zero or more options to the default config.
func ApplyStreamOptions(opts ...StreamOption) StreamConfig {
	cfg := DefaultStreamConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
