package hyprland

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"regexp"
	"strings"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

// Hyprctl talks to Hyprland's command socket, like the hyprctl tool does.
type Hyprctl struct {
	socketPath string
}

func NewHyprctl() (*Hyprctl, error) {
	path, err := getSocketPath()
	if err != nil {
		return nil, err
	}

	return NewHyprctlWithSocket(path), nil
}

func NewHyprctlWithSocket(socketPath string) *Hyprctl {
	return &Hyprctl{socketPath: socketPath}
}

// SwitchToLayout asks Hyprland to activate layout idx on keyboard and
// returns its reply, "ok" on success.
func (c *Hyprctl) SwitchToLayout(keyboard string, idx int) (string, error) {
	resp, err := c.makeRequest(fmt.Sprintf("switchxkblayout %s %d", keyboard, idx), "")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp)), nil
}

func (c *Hyprctl) GetKeyboards() ([]Keyboard, error) {
	resp, err := c.makeRequest("devices", "j")
	if err != nil {
		return nil, err
	}

	var devs devices
	if err := json.Unmarshal(resp, &devs); err != nil {
		return nil, fmt.Errorf("unmarshal devices: %w, (hyprctl: %s)", err, resp)
	}

	keyboards := devs.Keyboards
	out := make([]Keyboard, 0, len(keyboards))
	for _, k := range keyboards {
		out = append(out, k.ToKeyboard())
	}

	return out, nil
}

func (c *Hyprctl) makeRequest(request string, flags string) ([]byte, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial hyprctl socket: %w", err)
	}
	defer conn.Close()

	_, err = conn.Write([]byte(fmt.Sprintf("%s/%s", flags, request)))
	if err != nil {
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	// hyprland closes the connection once the reply is written
	resp, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read from hyprctl socket: %w", err)
	}

	return resp, nil
}

var replyMapper = []struct {
	re   *regexp.Regexp
	code int32
}{
	{regexp.MustCompile(`^ok$`), inputsource.CodeOK},
	{regexp.MustCompile(`layout idx out of range.*`), inputsource.CodeNotFound},
	{regexp.MustCompile(`device not found`), inputsource.CodeRejected},
}

// replyCode maps a switchxkblayout reply to a select result code. Anything
// unrecognised counts as a rejected switch.
func replyCode(reply string) int32 {
	for _, m := range replyMapper {
		if m.re.MatchString(reply) {
			return m.code
		}
	}

	return inputsource.CodeRejected
}
