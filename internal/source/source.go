package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go-trivia-watcher/internal/apperrors"
	"go-trivia-watcher/internal/config"
)

// Source provides the raw capture byte stream the frame extractor consumes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New selects a source implementation from configuration.
func New(cfg *config.Config) (Source, error) {
	switch cfg.StreamSource {
	case config.SourceExec:
		return NewExecSource(cfg.StreamCommand), nil
	case config.SourceFile:
		if cfg.StreamFile == "" {
			return nil, apperrors.NewValidationError("STREAM_FILE is required for the file source", nil)
		}
		return NewFileSource(cfg.StreamFile), nil
	case config.SourceAzure:
		return NewBlobSource(cfg.AzureAccount, cfg.AzureKey, cfg.AzureContainer, cfg.AzureBlob)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown stream source %q", cfg.StreamSource), nil)
	}
}

// ExecSource runs the external capture subprocess and exposes its stdout.
// The subprocess is expected to write a continuous MJPEG byte stream, e.g.
// an ffmpeg wrapper ending in "-f image2pipe -vcodec mjpeg pipe:1".
type ExecSource struct {
	command string
}

func NewExecSource(command string) *ExecSource {
	return &ExecSource{command: command}
}

func (s *ExecSource) Open(ctx context.Context) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", s.command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, apperrors.NewStreamError("failed to open capture pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, apperrors.NewStreamError("failed to start capture subprocess", err)
	}
	return &execPipe{ReadCloser: stdout, cmd: cmd}, nil
}

// execPipe reaps the subprocess when the pipe is closed.
type execPipe struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (p *execPipe) Close() error {
	err := p.ReadCloser.Close()
	if waitErr := p.cmd.Wait(); err == nil {
		err = waitErr
	}
	return err
}

// FileSource replays a recorded capture from a local file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.NewStreamError("failed to open capture file", err)
	}
	return f, nil
}
