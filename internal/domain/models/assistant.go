package models

import "strings"

// CommandType enumerates the assistant slash commands.
type CommandType string

const (
	CommandOccupancy CommandType = "ocupacion"
	CommandTrend     CommandType = "tendencia"
	CommandAlerts    CommandType = "alertas"
	CommandHelp      CommandType = "ayuda"
	CommandFreeText  CommandType = "freetext"
)

// Command is a parsed assistant instruction extracted from an inbound message.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form assistant text. Messages that
// do not start with a known slash command fall through as free text for the
// language model.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(message)
	cmd := Command{Raw: message}

	if normalized == "" || !strings.HasPrefix(normalized, "/") {
		cmd.Type = CommandFreeText
		return cmd
	}

	tokens := strings.Fields(strings.ToLower(normalized))
	head := strings.TrimPrefix(tokens[0], "/")

	switch head {
	case string(CommandOccupancy):
		cmd.Type = CommandOccupancy
	case string(CommandTrend):
		cmd.Type = CommandTrend
	case string(CommandAlerts):
		cmd.Type = CommandAlerts
	case string(CommandHelp):
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandFreeText
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}

// AssistantMessage is the inbound payload of the assistant webhook.
type AssistantMessage struct {
	ConversationID string `json:"conversation_id"`
	From           string `json:"from"`
	Text           string `json:"text" binding:"required"`
}

// AssistantReply is the webhook response sent back to the chat frontend.
type AssistantReply struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}
