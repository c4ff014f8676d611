package sampleio

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	pcmFormat       = 1
	defaultBitDepth = 24
	iqChannels      = 2
)

// ReadWAV decodes a WAV stream into complex samples scaled to [-1, 1]. Stereo
// files carry I (real) on the left and Q (imaginary) on the right channel;
// mono files give real samples.
func ReadWAV(r io.ReadSeeker) (q []complex128, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: not a WAV file", ErrFormat)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	channels := buf.Format.NumChannels
	if channels < 1 || channels > iqChannels {
		return nil, 0, fmt.Errorf("%w: %d channels, want 1 or 2", ErrFormat, channels)
	}
	scale := 1 / fullScale(int(dec.BitDepth))
	frames := len(buf.Data) / channels
	q = make([]complex128, frames)
	for n := range frames {
		re := float64(buf.Data[n*channels]) * scale
		var im float64
		if channels == iqChannels {
			im = float64(buf.Data[n*channels+1]) * scale
		}
		q[n] = complex(re, im)
	}
	return q, buf.Format.SampleRate, nil
}

// WriteWAV encodes q as a 24-bit stereo I/Q file. Samples are divided by
// peak and clipped to full scale; peak ≤ 0 selects the largest component.
func WriteWAV(w io.WriteSeeker, q []complex128, sampleRate int, peak float64) error {
	if peak <= 0 {
		for _, v := range q {
			peak = math.Max(peak, math.Max(math.Abs(real(v)), math.Abs(imag(v))))
		}
		if peak == 0 {
			peak = 1
		}
	}
	full := fullScale(defaultBitDepth)
	data := make([]int, 0, iqChannels*len(q))
	for _, v := range q {
		data = append(data, quantize(real(v)/peak, full), quantize(imag(v)/peak, full))
	}

	enc := wav.NewEncoder(w, sampleRate, defaultBitDepth, iqChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: iqChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: defaultBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func fullScale(bitDepth int) float64 {
	return math.Exp2(float64(bitDepth-1)) - 1
}

func quantize(x, full float64) int {
	return int(math.Round(math.Max(-1, math.Min(1, x)) * full))
}
