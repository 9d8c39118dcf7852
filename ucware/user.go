package ucware

import (
	"context"

	"braces.dev/errtrace"
)

// UserClient exposes the interfaces of the "user" namespace.
type UserClient struct {
	c *Client
}

// Authentication returns the client of the "user/authentication" interface.
func (u *UserClient) Authentication() *AuthenticationClient { return &AuthenticationClient{u.c} }

// Slots returns the client of the "user/slot" interface.
func (u *UserClient) Slots() *SlotClient { return &SlotClient{u.c} }

// AuthenticationClient calls the "user/authentication" interface.
type AuthenticationClient struct {
	c *Client
}

// GetToken fetches a fresh bearer token for the authenticated user.
func (a *AuthenticationClient) GetToken(ctx context.Context) (string, error) {
	var token string
	if err := a.c.call(ctx, "user", "authentication", "getToken", nil, &token); err != nil {
		return "", errtrace.Wrap(err)
	}
	return token, nil
}

// ValidateToken checks the current bearer token and returns the username
// it belongs to.
func (a *AuthenticationClient) ValidateToken(ctx context.Context) (string, error) {
	var username string
	if err := a.c.call(ctx, "user", "authentication", "validateToken", nil, &username); err != nil {
		return "", errtrace.Wrap(err)
	}
	return username, nil
}

// Slot is a provisioned device slot of the user.
type Slot struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	UserID      uint64 `json:"userId"`
	DeviceType  string `json:"deviceType"`
	DeviceID    uint64 `json:"deviceId"`
	SIPHost     string `json:"sipHost"`
	SIPPort     uint16 `json:"sipPort"`
	SIPUser     string `json:"sipUser"`
	SIPPassword string `json:"sipPassword"`
}

// SlotClient calls the "user/slot" interface.
type SlotClient struct {
	c *Client
}

// GetAll lists all slots of the authenticated user.
func (s *SlotClient) GetAll(ctx context.Context) ([]Slot, error) {
	var slots []Slot
	if err := s.c.call(ctx, "user", "slot", "getAll", nil, &slots); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return slots, nil
}
