// Package wave reads and writes RIFF/WAVE audio containers as normalised
// float64 samples.
//
// Five sample layouts are supported: 8, 16, 24 and 32 bit integer PCM and
// 32 bit IEEE float, either declared directly or through the
// WAVE_FORMAT_EXTENSIBLE indirection. Integer samples map onto [-1, 1) by
// dividing by their full-scale magnitude; float samples are used as stored.
//
// # Reading
//
//	r, err := wave.OpenFile("speech.wav")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	block := make([]float64, 256)
//	for {
//		n, err := r.ReadSamples(block)
//		if err != nil {
//			return err
//		}
//		consume(block[:n])
//		if n < len(block) {
//			break
//		}
//	}
//
// Reads past the end of the data chunk are not errors: they report the
// number of samples actually decoded and zero the remainder of the buffer.
// Samples of all channels are interleaved; see [Downmix].
//
// # Diagnostics
//
// Besides returning errors, a [Reader] keeps a bounded log of recent
// diagnostics (unexpected chunks, short reads, rejected formats), available
// through [Reader.Log] and mirrored to an optional [log/slog] logger.
package wave
