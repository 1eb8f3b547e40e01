package wave

import "github.com/go-audio/audio"

// AudioFormat returns f as a go-audio format descriptor.
func (f Format) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: f.Channels(),
		SampleRate:  f.FrameRate(),
	}
}

// PCMBuffer fills buf.Data from the current position, like ReadSamples,
// and sets the buffer's format to the stream's. It returns the number of
// samples decoded.
func (r *Reader) PCMBuffer(buf *audio.FloatBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}
	if !r.ready {
		return 0, ErrNotReady
	}
	buf.Format = r.format.AudioFormat()
	return r.ReadSamples(buf.Data)
}
