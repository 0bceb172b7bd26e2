package pcm

import (
	"errors"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// RawSink writes headerless PCM to W with a single write.
type RawSink struct {
	W   io.Writer
	Dst string
}

func (s *RawSink) Name() string {
	return s.Dst
}

func (s *RawSink) WritePCM(buf Buffer, _ int) error {
	return writeAll(s.W, buf.Bytes())
}

// RawFileSink writes headerless PCM to Path. The file is created only
// when there is audio to write.
type RawFileSink struct {
	Path string
}

func (s *RawFileSink) Name() string {
	return s.Path
}

func (s *RawFileSink) WritePCM(buf Buffer, _ int) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	err = writeAll(f, buf.Bytes())
	return closeOrRemove(f, err)
}

// WavFileSink writes a mono 16-bit WAV file.
type WavFileSink struct {
	Path string
}

func (s *WavFileSink) Name() string {
	return s.Path
}

func (s *WavFileSink) WritePCM(buf Buffer, sampleRate int) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}

	data := make([]int, len(buf))
	for i, v := range buf {
		data[i] = int(v)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	})
	err = errors.Join(err, enc.Close())
	return closeOrRemove(f, err)
}

func writeAll(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func closeOrRemove(f *os.File, err error) error {
	err = errors.Join(err, f.Close())
	if err != nil {
		_ = os.Remove(f.Name())
	}
	return err
}
