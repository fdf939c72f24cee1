// Package fcitx drives fcitx5 input methods through its D-Bus controller.
package fcitx

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.fcitx.Fcitx5"
	objectPath = dbus.ObjectPath("/controller")
	iface      = "org.fcitx.Fcitx.Controller1"
)

// Controller is the subset of fcitx5's controller interface ism uses.
type Controller interface {
	CurrentInputMethod() (string, error)
	SetCurrentIM(name string) error
	// GroupInputMethods lists the input methods of the active group in order.
	GroupInputMethods() ([]string, error)
}

type groupItem struct {
	Name   string
	Layout string
}

// DBusController implements Controller on the session bus.
type DBusController struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

func Connect() (*DBusController, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}

	return &DBusController{
		conn: conn,
		obj:  conn.Object(busName, objectPath),
	}, nil
}

func (c *DBusController) Close() error {
	return c.conn.Close()
}

func (c *DBusController) CurrentInputMethod() (string, error) {
	var name string
	if err := c.obj.Call(iface+".CurrentInputMethod", 0).Store(&name); err != nil {
		return "", fmt.Errorf("fcitx CurrentInputMethod: %w", err)
	}

	return name, nil
}

func (c *DBusController) SetCurrentIM(name string) error {
	if call := c.obj.Call(iface+".SetCurrentIM", 0, name); call.Err != nil {
		return fmt.Errorf("fcitx SetCurrentIM: %w", call.Err)
	}

	return nil
}

func (c *DBusController) GroupInputMethods() ([]string, error) {
	var group string
	if err := c.obj.Call(iface+".CurrentInputMethodGroup", 0).Store(&group); err != nil {
		return nil, fmt.Errorf("fcitx CurrentInputMethodGroup: %w", err)
	}

	var (
		layout string
		items  []groupItem
	)
	if err := c.obj.Call(iface+".InputMethodGroupInfo", 0, group).Store(&layout, &items); err != nil {
		return nil, fmt.Errorf("fcitx InputMethodGroupInfo %q: %w", group, err)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	return names, nil
}
