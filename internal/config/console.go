package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ConsoleConfig holds settings for the terminal front end.
type ConsoleConfig struct {
	// FromBlack draws the board with Black at the bottom
	FromBlack bool

	// FollowTurn redraws from the side on move, overriding FromBlack
	FollowTurn bool

	// Coordinates prints x and y labels in the margins
	Coordinates bool

	// Prompt is printed before each input line
	Prompt string
}

// NewConsoleConfig creates a ConsoleConfig with default values.
func NewConsoleConfig() *ConsoleConfig {
	return &ConsoleConfig{
		Coordinates: true,
		Prompt:      "> ",
	}
}

// Validate checks that the console configuration is consistent.
func (c *ConsoleConfig) Validate() error {
	if c.FollowTurn && c.FromBlack {
		return fmt.Errorf("follow-turn and from-black both set: %w", errors.ErrInvalidConfig)
	}
	return nil
}
