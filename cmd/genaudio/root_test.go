package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/mrclmr/genaudio/internal/engine"
	"github.com/mrclmr/genaudio/internal/pcm"
	"github.com/mrclmr/genaudio/internal/synth"
)

// dummyEngine pretends to be a TTS program writing a 24 kHz WAV file.
type dummyEngine struct {
	log  []string
	data []int
	err  error
}

func (d *dummyEngine) execCmdCtx(_ context.Context, _ []string, name string, args ...string) engine.Cmd {
	d.log = append(d.log, strings.Join(append([]string{name}, args...), " "))
	return &dummyCmd{engine: d, args: args}
}

type dummyCmd struct {
	engine *dummyEngine
	args   []string
}

func (c *dummyCmd) Run(stdin io.Reader) ([]byte, error) {
	if stdin != nil {
		_, _ = io.Copy(io.Discard, stdin)
	}
	if c.engine.err != nil {
		return nil, c.engine.err
	}
	for _, arg := range c.args {
		if strings.HasSuffix(arg, "out.wav") {
			return nil, writeWav(arg, c.engine.data)
		}
	}
	return nil, errors.New("no output path")
}

func writeWav(path string, data []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	enc := wav.NewEncoder(f, 24000, 16, 1, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 24000},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return err
	}
	return enc.Close()
}

func noEnv(string) string {
	return ""
}

func execute(t *testing.T, d *dummyEngine, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	stdout = &bytes.Buffer{}
	stderr = &bytes.Buffer{}
	rootCmd := newRootCmd("test", d.execCmdCtx, noEnv)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err = executeContext(t.Context(), rootCmd)
	return stdout, stderr, err
}

func TestRoot_Synthesize(t *testing.T) {
	resDir := t.TempDir()
	for name, content := range map[string]string{
		engine.DefaultKokoroModel:  "onnx",
		engine.DefaultKokoroVoices: "PK\x03\x04",
	} {
		if err := os.WriteFile(filepath.Join(resDir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile(): %v", err)
		}
	}

	d := &dummyEngine{data: []int{0, 16384, -32768, 32767}}
	stdout, stderr, err := execute(t, d, "--resource-dir", resDir, "Hello", "world", "af_heart", "en-us")
	if err != nil {
		t.Fatalf("Execute(): %v\n%s", err, stderr)
	}

	want := pcm.Buffer{0, 16384, -32767, 32767}.Bytes()
	if !slices.Equal(stdout.Bytes(), want) {
		t.Fatalf("stdout % x, want % x", stdout.Bytes(), want)
	}

	wantTrace := []string{
		"[genaudio] started",
		`[genaudio] arguments parsed text="Hello world" voice="af_heart" language="en-us"`,
		`[genaudio] engine initialized engine="kokoro"`,
		"[genaudio] audio created sample_rate=24000 samples=4",
		"[genaudio] audio encoded bytes=8",
		`[genaudio] write complete dst="stdout"`,
	}
	gotTrace := strings.Split(strings.TrimSuffix(stderr.String(), "\n"), "\n")
	if !slices.Equal(gotTrace, wantTrace) {
		t.Fatalf("\ngot\n%s\nwant\n%s", strings.Join(gotTrace, "\n"), strings.Join(wantTrace, "\n"))
	}
}

func TestRoot_TextLooksLikeFlag(t *testing.T) {
	d := &dummyEngine{data: []int{1}}
	stdout, stderr, err := execute(t, d, "--engine", "espeak_ng", "--", "-5", "degrees", "--debug", "default", "en-us")
	if err != nil {
		t.Fatalf("Execute(): %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr.String(), `text="-5 degrees --debug"`) {
		t.Fatalf("text not passed through:\n%s", stderr)
	}
	if stdout.Len() != 2 {
		t.Fatalf("stdout %d bytes, want 2", stdout.Len())
	}
	if len(d.log) != 1 || !strings.HasPrefix(d.log[0], "espeak-ng ") {
		t.Fatalf("engine log %q", d.log)
	}
}

func TestRoot_WavOutput(t *testing.T) {
	d := &dummyEngine{data: []int{0, 100, -100}}
	out := filepath.Join(t.TempDir(), "hello.wav")
	stdout, stderr, err := execute(t, d, "--engine", "espeak_ng", "-o", out, "hello", "default", "en")
	if err != nil {
		t.Fatalf("Execute(): %v\n%s", err, stderr)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout %d bytes, want 0", stdout.Len())
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	defer func() {
		_ = f.Close()
	}()
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer(): %v", err)
	}
	if dec.SampleRate != 24000 || !slices.Equal(buf.Data, []int{0, 100, -100}) {
		t.Fatalf("wav %d Hz %v", dec.SampleRate, buf.Data)
	}
}

func TestRoot_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		engine   *dummyEngine
		wantCode int
	}{
		{
			name:     "missing arguments",
			args:     []string{"--engine", "espeak_ng", "en-us"},
			engine:   &dummyEngine{},
			wantCode: 2,
		},
		{
			name:     "missing model",
			args:     []string{"--resource-dir", "/nonexistent", "hi", "af_heart", "en-us"},
			engine:   &dummyEngine{},
			wantCode: 3,
		},
		{
			name:     "engine fails",
			args:     []string{"--engine", "espeak_ng", "hi", "xx", "en-us"},
			engine:   &dummyEngine{err: errors.New("exit status 1")},
			wantCode: 4,
		},
		{
			name:     "unwritable output",
			args:     []string{"--engine", "espeak_ng", "-o", "/nonexistent/dir/out.pcm", "hi", "default", "en-us"},
			engine:   &dummyEngine{data: []int{1}},
			wantCode: 5,
		},
		{
			name:     "unknown engine",
			args:     []string{"--engine", "festival", "hi", "default", "en-us"},
			engine:   &dummyEngine{},
			wantCode: 1,
		},
		{
			name:     "missing config",
			args:     []string{"--config", "/nonexistent.yaml", "hi", "default", "en-us"},
			engine:   &dummyEngine{},
			wantCode: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.engine, tt.args...)
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}
			if got := ExitCode(err); got != tt.wantCode {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, got, tt.wantCode)
			}
			if stdout.Len() != 0 {
				t.Fatalf("stdout %d bytes, want 0", stdout.Len())
			}
		})
	}
}

func TestRoot_FailureReport(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		engine   *dummyEngine
		wantLast string
		wantN    int
	}{
		{
			name:     "engine fails",
			args:     []string{"--engine", "espeak_ng", "hi", "xx", "en-us"},
			engine:   &dummyEngine{err: errors.New("exit status 1")},
			wantLast: "[genaudio] ERROR EngineReady: espeak-ng: synthesize: exit status 1",
			wantN:    4,
		},
		{
			name:     "missing arguments",
			args:     []string{"--engine", "espeak_ng", "en-us"},
			engine:   &dummyEngine{},
			wantLast: "[genaudio] ERROR Start: missing arguments: want <text...> <voice> <language> (got 1)",
			wantN:    2,
		},
		{
			name:     "unknown engine",
			args:     []string{"--engine", "festival", "hi", "default", "en-us"},
			engine:   &dummyEngine{},
			wantLast: "[genaudio] ERROR unknown engine 'festival'",
			wantN:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.engine, tt.args...)
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}
			lines := strings.Split(strings.TrimSuffix(stderr.String(), "\n"), "\n")
			if len(lines) != tt.wantN || lines[len(lines)-1] != tt.wantLast {
				t.Fatalf("stderr\n%s\nwant %d lines ending with\n%s", stderr, tt.wantN, tt.wantLast)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{&synth.Failure{From: synth.EngineReady, Err: &synth.SynthesisError{Engine: "kokoro", Err: context.Canceled}}, 130},
		{&synth.Failure{From: synth.EngineReady, Err: &synth.SynthesisError{Engine: "kokoro", Err: context.DeadlineExceeded}}, 4},
		{errors.New("usage"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genaudio.yaml")
	err := os.WriteFile(path, []byte("engine:\n  custom_command: 'say-to-wav %[1]s %[2]s'\n"), 0o600)
	if err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}
	d := &dummyEngine{data: []int{5}}
	_, stderr, err := execute(t, d, "-c", path, "hi", "there", "v1", "en")
	if err != nil {
		t.Fatalf("Execute(): %v\n%s", err, stderr)
	}
	if len(d.log) != 1 || !strings.HasPrefix(d.log[0], "say-to-wav ") || !strings.HasSuffix(d.log[0], "out.wav hi there") {
		t.Fatalf("engine log %q", d.log)
	}
}

func TestExampleCmd(t *testing.T) {
	stdout, _, err := execute(t, &dummyEngine{}, "example")
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	if !strings.Contains(stdout.String(), "engine:") {
		t.Fatalf("unexpected example:\n%s", stdout)
	}
}

func TestVoicesCmd(t *testing.T) {
	stdout, _, err := execute(t, &dummyEngine{}, "voices")
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != len(engine.KokoroVoices) {
		t.Fatalf("%d lines, want %d", len(lines), len(engine.KokoroVoices))
	}
	if strings.Join(strings.Fields(lines[0]), " ") != "af_alloy en-us" {
		t.Fatalf("first line %q", lines[0])
	}
}
