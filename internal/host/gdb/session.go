// Package gdb drives a live GDB as a symsync host over the GDB/MI protocol.
//
// The session spawns GDB in MI mode over pipes and allocates a separate
// pseudo-terminal for the inferior's own I/O, the same split most MI front
// ends use: protocol traffic stays clean on the pipes while the debugged
// process keeps a real terminal.
package gdb

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kr/pty"
	"github.com/rs/zerolog"

	"github.com/symsync-io/symsync/internal/host"
)

// Config holds the configuration for a GDB session.
type Config struct {
	// Path is the GDB binary, absolute or looked up on PATH.
	Path string

	// Args are extra arguments appended after the MI flags.
	Args []string

	// ConsoleOut receives GDB console output and inferior terminal
	// output. Nil discards both.
	ConsoleOut io.Writer
}

// CommandError reports that GDB rejected a command.
type CommandError struct {
	// Command is the rejected command text.
	Command string

	// Message is GDB's error message.
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("gdb: %s", e.Message)
}

// Session is a running GDB child process implementing host.Context.
//
// All operations are serialized; GDB/MI processes one command at a time and
// the bridge only ever calls sequentially anyway.
type Session struct {
	ID string

	config Config
	logger zerolog.Logger

	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Reader

	// ptmx/tty are the inferior's terminal. The master stays open for the
	// session lifetime so terminal output keeps flowing to ConsoleOut.
	ptmx *os.File
	tty  *os.File

	mu          sync.Mutex
	attachedPID int
	token       int
}

// Start spawns GDB in MI mode and waits for it to become ready.
func Start(ctx context.Context, config Config, logger zerolog.Logger) (*Session, error) {
	args := append([]string{"--interpreter=mi2", "-q", "-nx"}, config.Args...)
	cmd := exec.CommandContext(ctx, config.Path, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create gdb stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create gdb stdout pipe: %w", err)
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open inferior PTY: %w", err)
	}

	if err := cmd.Start(); err != nil {
		_ = ptmx.Close()
		_ = tty.Close()
		return nil, fmt.Errorf("failed to start gdb: %w", err)
	}

	s := &Session{
		ID:     uuid.New().String(),
		config: config,
		logger: logger.With().Str("component", "gdb-session").Logger(),
		cmd:    cmd,
		stdin:  stdin,
		out:    bufio.NewReader(stdout),
		ptmx:   ptmx,
		tty:    tty,
	}

	// Forward inferior terminal output.
	go func() {
		_, _ = io.Copy(s.consoleOut(), ptmx)
	}()

	// Drain the startup records up to the first prompt.
	if _, _, err := s.readReply(""); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("gdb did not become ready: %w", err)
	}

	// Route the inferior's I/O to the session PTY. Older GDBs without MI
	// tty support just keep the default; not fatal.
	if _, err := s.runMI("-inferior-tty-set " + tty.Name()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to set inferior tty")
	}

	s.logger.Debug().
		Str("session_id", s.ID).
		Str("gdb", config.Path).
		Msg("GDB session started")

	return s, nil
}

// Attach attaches the session to a running process.
func (s *Session) Attach(pid int) error {
	if _, err := s.runMI("-target-attach " + strconv.Itoa(pid)); err != nil {
		return fmt.Errorf("failed to attach to pid %d: %w", pid, err)
	}

	s.mu.Lock()
	s.attachedPID = pid
	s.mu.Unlock()

	s.logger.Info().Int("pid", pid).Msg("Attached to inferior")
	return nil
}

// Detach detaches from the current inferior, leaving it running.
func (s *Session) Detach() error {
	s.mu.Lock()
	attached := s.attachedPID
	s.mu.Unlock()
	if attached == 0 {
		return nil
	}

	if _, err := s.runMI("-target-detach"); err != nil {
		return fmt.Errorf("failed to detach from pid %d: %w", attached, err)
	}

	s.mu.Lock()
	s.attachedPID = 0
	s.mu.Unlock()

	s.logger.Info().Int("pid", attached).Msg("Detached from inferior")
	return nil
}

// SelectedProcessID implements host.Context.
func (s *Session) SelectedProcessID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attachedPID == 0 {
		return 0, host.ErrNoInferior
	}
	return s.attachedPID, nil
}

// ExecuteCommand implements host.Context by running one console command
// through the MI interpreter. GDB treats an empty console command as a
// no-op, so empty lines pass through harmlessly.
func (s *Session) ExecuteCommand(line string) error {
	_, err := s.runMI("-interpreter-exec console " + quoteMI(line))
	if err != nil {
		if cmdErr, ok := err.(*CommandError); ok {
			cmdErr.Command = line
		}
		return err
	}
	return nil
}

// Close shuts the session down, killing GDB if it does not exit promptly.
func (s *Session) Close() error {
	// Best effort: a wedged GDB is handled by the kill below.
	_, _ = fmt.Fprintln(s.stdin, "-gdb-exit")
	_ = s.stdin.Close()

	done := make(chan error, 1)
	go func() {
		done <- s.cmd.Wait()
	}()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-time.After(5 * time.Second):
		s.logger.Warn().Msg("GDB did not exit, killing it")
		_ = s.cmd.Process.Kill()
		waitErr = <-done
	}

	_ = s.ptmx.Close()
	_ = s.tty.Close()

	s.logger.Debug().Str("session_id", s.ID).Msg("GDB session closed")
	return waitErr
}

// runMI submits one MI command and waits for its result record.
// An ^error result is returned as *CommandError.
func (s *Session) runMI(command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	token := strconv.Itoa(s.token)

	if _, err := fmt.Fprintf(s.stdin, "%s%s\n", token, command); err != nil {
		return "", fmt.Errorf("failed to write to gdb: %w", err)
	}

	class, payload, err := s.readReply(token)
	if err != nil {
		return "", err
	}
	if class == "error" {
		msg := resultMessage(payload)
		if msg == "" {
			msg = "command failed"
		}
		return "", &CommandError{Message: msg}
	}
	return class, nil
}

// readReply consumes MI output until the prompt that follows a result record
// for the given token. Stream records seen along the way are forwarded to
// ConsoleOut. An empty token matches the startup banner, which has a prompt
// but no result record.
func (s *Session) readReply(token string) (class, payload string, err error) {
	haveResult := token == ""
	for {
		line, readErr := s.out.ReadString('\n')
		if readErr != nil {
			return "", "", fmt.Errorf("gdb terminated unexpectedly: %w", readErr)
		}

		rec, ok := parseRecord(line)
		if !ok {
			continue
		}

		switch rec.Type {
		case streamRecord:
			if rec.Class == streamConsole || rec.Class == streamTarget {
				_, _ = io.WriteString(s.consoleOut(), rec.Payload)
			} else {
				s.logger.Trace().Str("log", strings.TrimSpace(rec.Payload)).Msg("gdb")
			}
		case resultRecord:
			if rec.Token == token {
				haveResult = true
				class = rec.Class
				payload = rec.Payload
			}
		case asyncRecord:
			s.logger.Trace().
				Str("class", rec.Class).
				Str("payload", rec.Payload).
				Msg("gdb async record")
		case promptRecord:
			if haveResult {
				return class, payload, nil
			}
		}
	}
}

func (s *Session) consoleOut() io.Writer {
	if s.config.ConsoleOut == nil {
		return io.Discard
	}
	return s.config.ConsoleOut
}
