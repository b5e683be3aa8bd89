package audio

// SampleBuffer holds a fully decoded take: mono samples at the file's
// native sample rate. Samples are 32-bit floats in [-1, 1]. The buffer is
// created once by the decoder and treated as read-only by every
// downstream stage, so it may be shared across goroutines freely.
type SampleBuffer struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the buffer length in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}
