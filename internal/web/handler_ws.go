package web

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/creack/pty/v2"
)

type resizeMsg struct {
	Type string `json:"type"`
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// tuiCommand builds the child process one browser tab talks to.
func (s *Server) tuiCommand(exe, sessionFile string) *exec.Cmd {
	cmd := exec.Command(exe, "tui", "--server", s.apiURL, "--session", sessionFile)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	return cmd
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionFile, err := s.readSessionFile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	cols := parseUint16(r.URL.Query().Get("cols"), 80)
	rows := parseUint16(r.URL.Query().Get("rows"), 24)

	exe, err := os.Executable()
	if err != nil {
		s.log.Error().Err(err).Msg("os.Executable")
		conn.Close(websocket.StatusInternalError, "cannot find executable")
		return
	}

	cmd := s.tuiCommand(exe, sessionFile)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		s.log.Error().Err(err).Msg("pty start")
		conn.Close(websocket.StatusInternalError, "failed to start pty")
		return
	}
	log := s.log.With().Int("pid", cmd.Process.Pid).Logger()
	log.Debug().Str("session", sessionFile).Msg("tui started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	cleanup := func() {
		cancel()
		ptmx.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
		log.Debug().Msg("tui stopped")
	}

	// PTY -> WebSocket (binary frames to avoid UTF-8 validation issues)
	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				log.Debug().Err(err).Msg("pty read")
				once.Do(cleanup)
				conn.Close(websocket.StatusNormalClosure, "process exited")
				return
			}
			if err := conn.Write(ctx, websocket.MessageBinary, buf[:n]); err != nil {
				log.Debug().Err(err).Msg("ws write")
				once.Do(cleanup)
				return
			}
		}
	}()

	// WebSocket -> PTY
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("ws read")
			once.Do(cleanup)
			return
		}

		if resize, ok := parseResize(data); ok {
			pty.Setsize(ptmx, &pty.Winsize{Rows: resize.Rows, Cols: resize.Cols})
			continue
		}

		if _, err := ptmx.Write(data); err != nil {
			once.Do(cleanup)
			return
		}
	}
}

// parseResize recognises the browser's {"type":"resize"} control frame. Anything
// else is keyboard input for the pty.
func parseResize(data []byte) (resizeMsg, bool) {
	var resize resizeMsg
	if !strings.HasPrefix(string(data), "{") {
		return resize, false
	}
	if json.Unmarshal(data, &resize) != nil || resize.Type != "resize" || resize.Cols == 0 || resize.Rows == 0 {
		return resize, false
	}
	return resize, true
}

func parseUint16(s string, def uint16) uint16 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return def
	}
	return uint16(v)
}
