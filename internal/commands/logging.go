package commands

import (
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

const commandModuleRoot = "mdt.commands"

// CommandLogger returns the logger for the command carried by msg. The module
// follows the message type: "mdt.status" logs as "mdt.commands.status".
// Messages without a type log as "mdt.commands.core".
func CommandLogger(provider interfaces.LoggerProvider, msg command.Message) interfaces.Logger {
	var msgType string
	if msg != nil {
		msgType = command.GetMessageType(msg)
	}
	name := strings.Trim(strings.TrimPrefix(msgType, "mdt."), ". ")
	if name == "" {
		name = "core"
	}

	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	fields := map[string]any{"component": "command"}
	if msgType != "" {
		fields["command"] = msgType
	}
	return logging.WithFields(logger, fields)
}
