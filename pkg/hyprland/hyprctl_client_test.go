package hyprland

import (
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

const devicesJSON = `{
  "mice": [],
  "keyboards": [
    {
      "address": "0x1",
      "name": "power-button",
      "layout": "us",
      "variant": "",
      "options": "",
      "active_keymap": "English (US)",
      "main": false
    },
    {
      "address": "0x2",
      "name": "at-translated-set-2-keyboard",
      "layout": "us,de",
      "variant": ",nodeadkeys",
      "options": "grp:alt_shift_toggle",
      "active_keymap": "German (no dead keys)",
      "active_layout_index": 1,
      "main": true
    }
  ]
}`

type fakeHyprland struct {
	mu       sync.Mutex
	requests []string
}

func (f *fakeHyprland) serve(t *testing.T, reply func(req string) string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "h.sock")
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}

			buf := make([]byte, 4096)
			n, _ := conn.Read(buf)
			req := string(buf[:n])

			f.mu.Lock()
			f.requests = append(f.requests, req)
			f.mu.Unlock()

			_, _ = conn.Write([]byte(reply(req)))
			_ = conn.Close()
		}
	}()

	return path
}

func (f *fakeHyprland) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func TestHyprctlGetKeyboards(t *testing.T) {
	fake := &fakeHyprland{}
	path := fake.serve(t, func(string) string { return devicesJSON })

	keyboards, err := NewHyprctlWithSocket(path).GetKeyboards()
	require.NoError(t, err)
	require.Len(t, keyboards, 2)

	kb := keyboards[1]
	assert.Equal(t, "at-translated-set-2-keyboard", kb.Name)
	assert.True(t, kb.Main)
	assert.Equal(t, 1, kb.ActiveLayoutIndex)
	assert.Equal(t, inputsource.List{"us", "de(nodeadkeys)"}, kb.LayoutIDs())
	assert.Equal(t, -1, keyboards[0].ActiveLayoutIndex)

	assert.Equal(t, []string{"j/devices"}, fake.Requests())
}

func TestHyprctlGetKeyboardsBadJSON(t *testing.T) {
	fake := &fakeHyprland{}
	path := fake.serve(t, func(string) string { return "unknown request" })

	_, err := NewHyprctlWithSocket(path).GetKeyboards()
	require.Error(t, err)
}

func TestHyprctlSwitchToLayout(t *testing.T) {
	fake := &fakeHyprland{}
	path := fake.serve(t, func(string) string { return "ok\n" })

	reply, err := NewHyprctlWithSocket(path).SwitchToLayout("at-translated-set-2-keyboard", 1)
	require.NoError(t, err)

	assert.Equal(t, "ok", reply)
	assert.Equal(t, []string{"/switchxkblayout at-translated-set-2-keyboard 1"}, fake.Requests())
}

func TestHyprctlDialError(t *testing.T) {
	_, err := NewHyprctlWithSocket(filepath.Join(t.TempDir(), "missing.sock")).GetKeyboards()
	require.Error(t, err)
}

func TestReplyCode(t *testing.T) {
	tests := []struct {
		reply string
		want  int32
	}{
		{"ok", inputsource.CodeOK},
		{"layout idx out of range of 2", inputsource.CodeNotFound},
		{"device not found", inputsource.CodeRejected},
		{"something else", inputsource.CodeRejected},
		{"", inputsource.CodeRejected},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, replyCode(tt.reply))
		})
	}
}

func TestGetSocketPathNotRunning(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	_, err := getSocketPath()
	require.ErrorIs(t, err, ErrNotRunning)

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "ism-test-no-such-instance")
	_, err = getSocketPath()
	require.ErrorIs(t, err, ErrNotRunning)
}
