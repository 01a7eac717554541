package ipc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/berrythewa/clipman/internal/types"
)

// Response statuses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Commands understood by the daemon
const (
	CmdStatus      = "status"
	CmdHistory     = "history"
	CmdTags        = "tags"
	CmdCopy        = "copy"
	CmdDelete      = "delete"
	CmdFavorite    = "favorite"
	CmdSetTags     = "tag"
	CmdClear       = "clear"
	CmdGroupList   = "group.list"
	CmdGroupCreate = "group.create"
	CmdGroupDelete = "group.delete"
	CmdGroupRename = "group.rename"
	CmdGroupAdd    = "group.add"
	CmdGroupRemove = "group.remove"
	CmdGroupShow   = "group.show"
)

// Request represents a command sent from the CLI to the daemon.
type Request struct {
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"` // Command-specific arguments
}

// Response represents a reply from the daemon to the CLI.
type Response struct {
	Status  string          `json:"status"`            // "ok" or "error"
	Message string          `json:"message,omitempty"` // Human-readable message or error
	Data    json.RawMessage `json:"data,omitempty"`    // Command-specific data
}

// HistoryArgs selects entries like the list views do
type HistoryArgs struct {
	Tab     string   `json:"tab,omitempty"` // all, favorites or group
	GroupID string   `json:"groupId,omitempty"`
	Search  string   `json:"search,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// EntryArgs addresses one history entry
type EntryArgs struct {
	ID string `json:"id"`
}

// SetTagsArgs replaces an entry's tags
type SetTagsArgs struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// GroupArgs addresses a group, optionally with a (new) name
type GroupArgs struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// MemberArgs addresses one membership edge
type MemberArgs struct {
	GroupID string `json:"groupId"`
	ItemID  string `json:"itemId"`
}

// GroupDetails is a group together with its live members
type GroupDetails struct {
	Group types.Group   `json:"group"`
	Items []types.Entry `json:"items"`
}

// StatusInfo describes a running daemon
type StatusInfo struct {
	PID    int    `json:"pid"`
	Items  int    `json:"items"`
	Groups int    `json:"groups"`
	Socket string `json:"socket"`
}

// NewRequest encodes args into a request for command
func NewRequest(command string, args any) (*Request, error) {
	req := &Request{Command: command}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s arguments: %w", command, err)
		}
		req.Args = raw
	}
	return req, nil
}

// DecodeArgs unpacks the request arguments into v. Missing arguments leave
// v untouched.
func (r *Request) DecodeArgs(v any) error {
	if len(r.Args) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Args, v); err != nil {
		return fmt.Errorf("invalid %s arguments: %w", r.Command, err)
	}
	return nil
}

// OK builds a success response carrying data
func OK(message string, data any) *Response {
	resp := &Response{Status: StatusOK, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Errorf("failed to encode response: %v", err)
		}
		resp.Data = raw
	}
	return resp
}

// Errorf builds an error response
func Errorf(format string, args ...any) *Response {
	return &Response{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Err returns the daemon-reported failure, if any
func (r *Response) Err() error {
	if r.Status == StatusOK {
		return nil
	}
	if r.Message == "" {
		return errors.New("daemon reported an error")
	}
	return errors.New(r.Message)
}

// DecodeData unpacks the response payload into v
func (r *Response) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
