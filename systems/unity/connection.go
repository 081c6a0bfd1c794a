// Package unity contains UDP variable sync with a remote (Unity) application.
package unity

import (
	"encoding/json"
	"net"
	"strings"
	"sync"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
	"github.com/pkg/errors"
)

const (
	// Logger system.
	logSystem = "unity"

	// Single variable update.
	payloadVariable = "VAR"
	// Variable with its description.
	payloadContainer = "VAC"

	typeBoolean = "boolean"
	typeNumber  = "number"
	typeString  = "string"

	maxPacketSize = 64 * 1024
)

// Variable describes synced application variable.
type Variable struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// Description describes application variable type and limits.
type Description struct {
	Type        string  `json:"Type"`
	Min         float64 `json:"Min"`
	Max         float64 `json:"Max"`
	WholeNumber bool    `json:"WholeNumber"`
}

// Container is sent by the application to announce a variable.
type Container struct {
	Variable    *Variable    `json:"Variable"`
	Description *Description `json:"Description"`
}

// Registered variable.
type variable struct {
	value    string
	accessor providers.IPropertyAccessor
}

// Connection exposes application string variables as properties
// and sends property changes back to the application.
type Connection struct {
	sync.Mutex
	logger common.ILoggerProvider
	store  providers.IPropertyStoreProvider
	prefix string

	conn        net.PacketConn
	remote      net.Addr
	fixedRemote bool
	variables   map[string]*variable
	done        chan struct{}
}

// ConstructConnection has data required for a new application connection.
type ConstructConnection struct {
	Logger   common.ILoggerProvider
	Store    providers.IPropertyStoreProvider
	Settings *providers.UnitySettings
}

// NewConnection starts listening for application packets.
// Without configured remote, replies go to the latest sender.
func NewConnection(ctor *ConstructConnection) (*Connection, error) {
	conn, err := net.ListenPacket("udp", ctor.Settings.Listen)
	if err != nil {
		return nil, errors.Wrap(err, "listen failed")
	}

	c := &Connection{
		logger:    ctor.Logger,
		store:     ctor.Store,
		prefix:    ctor.Settings.Prefix,
		conn:      conn,
		variables: make(map[string]*variable),
		done:      make(chan struct{}),
	}

	if "" != ctor.Settings.Remote {
		addr, err := net.ResolveUDPAddr("udp", ctor.Settings.Remote)
		if err != nil {
			conn.Close() // nolint: errcheck
			return nil, &ErrBadRemote{Remote: ctor.Settings.Remote}
		}

		c.remote = addr
		c.fixedRemote = true
	}

	go c.listen()
	c.logger.Info("Listening for application variables", common.LogSystemToken, logSystem,
		common.LogURLToken, conn.LocalAddr().String())
	return c, nil
}

// LocalAddr returns listening address.
func (c *Connection) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Path returns property path of the variable.
func (c *Connection) Path(name string) string {
	return c.prefix + "." + name
}

// Close stops listening and releases variable subscriptions.
func (c *Connection) Close() {
	c.conn.Close() // nolint: errcheck
	<-c.done

	c.Lock()
	defer c.Unlock()
	for _, v := range c.variables {
		if nil != v.accessor {
			v.accessor.Close()
		}
	}
}

// Reads packets until connection is closed.
func (c *Connection) listen() {
	defer close(c.done)
	buf := make([]byte, maxPacketSize)
	for {
		n, sender, err := c.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			c.logger.Debug("Failed to read application packet", common.LogSystemToken, logSystem,
				common.LogErrorToken, err.Error())
			continue
		}

		c.process(string(buf[:n]), sender)
	}
}

// Processes single packet.
func (c *Connection) process(text string, sender net.Addr) {
	if !strings.HasPrefix(text, payloadContainer) {
		c.logger.Debug("Ignoring application packet", common.LogSystemToken, logSystem,
			common.LogURLToken, sender.String())
		return
	}

	bvc := &Container{}
	if err := json.Unmarshal([]byte(text[len(payloadContainer):]), bvc); err != nil {
		c.logger.Error("Failed to un-marshal variable container", err, common.LogSystemToken, logSystem)
		return
	}

	if nil == bvc.Variable || nil == bvc.Description || "" == bvc.Variable.Name {
		c.logger.Warn("Received incomplete variable container", common.LogSystemToken, logSystem)
		return
	}

	c.Lock()
	if !c.fixedRemote {
		c.remote = sender
	}
	c.Unlock()

	switch bvc.Description.Type {
	case typeString:
		c.registerString(bvc.Variable)
	case typeBoolean, typeNumber:
		c.logger.Debug("Variable type is not synced", common.LogSystemToken, logSystem,
			common.LogNameToken, bvc.Variable.Name, common.LogFieldToken, bvc.Description.Type)
	default:
		c.logger.Warn("Unknown variable type", common.LogSystemToken, logSystem,
			common.LogNameToken, bvc.Variable.Name, common.LogFieldToken, bvc.Description.Type)
	}
}

// Registers string variable or updates value of the known one.
func (c *Connection) registerString(v *Variable) {
	path := c.Path(v.Name)

	c.Lock()
	existing, ok := c.variables[v.Name]
	if !ok {
		existing = &variable{}
		c.variables[v.Name] = existing
	}
	existing.value = v.Value
	c.Unlock()

	if !ok {
		name := v.Name
		acc := c.store.Subscribe(path, func(value interface{}) {
			c.changed(name, value)
		})

		c.Lock()
		existing.accessor = acc
		c.Unlock()
		c.logger.Info("Registered application variable", common.LogSystemToken, logSystem,
			common.LogPropertyToken, path)
	}

	c.store.Set(path, v.Value)
}

// Sends changed property value to the application.
func (c *Connection) changed(name string, value interface{}) {
	if nil == value {
		return
	}

	sv := utils.ToString(value)

	c.Lock()
	v, ok := c.variables[name]
	if !ok || v.value == sv {
		c.Unlock()
		return
	}

	v.value = sv
	remote := c.remote
	c.Unlock()

	if nil == remote {
		c.logger.Warn("Application address is unknown, variable is not sent", common.LogSystemToken, logSystem,
			common.LogNameToken, name)
		return
	}

	if err := c.send(remote, name, sv); err != nil {
		c.logger.Error("Failed to send variable", err, common.LogSystemToken, logSystem,
			common.LogNameToken, name)
	}
}

// Writes single variable packet.
func (c *Connection) send(remote net.Addr, name string, value string) error {
	data, err := json.Marshal(&Variable{Name: name, Value: value})
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	_, err = c.conn.WriteTo(append([]byte(payloadVariable), data...), remote)
	return errors.Wrap(err, "write failed")
}
