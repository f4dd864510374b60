package domain

import (
	"fmt"
	"regexp"
)

// identPattern constrains app ids: letters, digits and underscores, starting
// with a letter.
var identPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// senderPattern constrains SMS sender names.
var senderPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+#$_@-]*$`)

// Config carries the application parameters of a USSD app. Field names
// match the app section of the graph file (decoded with mapstructure over
// the defaults).
type Config struct {
	AppID string `mapstructure:"id" yaml:"id"`

	// BackTrigger/BackLabel build the back control line of split menus
	// ("0. Back" by default).
	BackTrigger string `mapstructure:"back_action_trigger" yaml:"back_action_trigger"`
	BackLabel   string `mapstructure:"back_action_display" yaml:"back_action_display"`

	// NextPageTrigger/NextPageLabel build the more control line
	// ("99. More" by default).
	NextPageTrigger string `mapstructure:"next_page_trigger" yaml:"next_page_trigger"`
	NextPageLabel   string `mapstructure:"next_page_display" yaml:"next_page_display"`

	DefaultEndMessage   string `mapstructure:"default_end_msg" yaml:"default_end_msg"`
	DefaultErrorMessage string `mapstructure:"default_error_msg" yaml:"default_error_msg"`

	// AlwaysStartNewSession wipes any stored session on every Init.
	AlwaysStartNewSession bool `mapstructure:"always_start_new_session" yaml:"always_start_new_session"`

	// AskToResume, effective only when AlwaysStartNewSession is off, offers
	// the subscriber a continue/restart choice when a prior session exists.
	AskToResume bool `mapstructure:"ask_to_resume" yaml:"ask_to_resume"`

	// AlwaysSendSMS echoes terminal messages to the subscriber over SMS.
	AlwaysSendSMS bool   `mapstructure:"always_send_sms" yaml:"always_send_sms"`
	SMSSenderName string `mapstructure:"sms_sender_name" yaml:"sms_sender_name"`

	MaxPageChars int `mapstructure:"max_page_chars" yaml:"max_page_chars"`
	MaxPageLines int `mapstructure:"max_page_lines" yaml:"max_page_lines"`
}

// DefaultConfig returns the carrier-safe defaults every app starts from.
func DefaultConfig() Config {
	return Config{
		BackTrigger:           "0",
		BackLabel:             "Back",
		NextPageTrigger:       "99",
		NextPageLabel:         "More",
		DefaultEndMessage:     "Goodbye",
		DefaultErrorMessage:   "Invalid input",
		AlwaysStartNewSession: true,
		MaxPageChars:          147,
		MaxPageLines:          10,
	}
}

// Validate checks the app parameters at construction time.
func (c Config) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("app id is required")
	}
	if !identPattern.MatchString(c.AppID) {
		return fmt.Errorf("app id %q: only letters, numbers and underscores are allowed", c.AppID)
	}
	if c.BackTrigger == "" || c.BackLabel == "" {
		return fmt.Errorf("back action trigger and display must not be empty")
	}
	if c.NextPageTrigger == "" || c.NextPageLabel == "" {
		return fmt.Errorf("next page trigger and display must not be empty")
	}
	if c.MaxPageChars <= 0 || c.MaxPageLines <= 0 {
		return fmt.Errorf("page limits must be positive (got %d chars, %d lines)", c.MaxPageChars, c.MaxPageLines)
	}
	if c.SMSSenderName != "" {
		if len(c.SMSSenderName) > 10 {
			return fmt.Errorf("sms sender name %q is too long (max 10 characters)", c.SMSSenderName)
		}
		if !senderPattern.MatchString(c.SMSSenderName) {
			return fmt.Errorf("sms sender name %q contains unexpected characters", c.SMSSenderName)
		}
	}
	return nil
}

// NextControl is the control line appended to non-final split pages.
func (c Config) NextControl() string {
	return c.NextPageTrigger + ". " + c.NextPageLabel
}

// BackControl is the control line appended to non-first split pages.
func (c Config) BackControl() string {
	return c.BackTrigger + ". " + c.BackLabel
}
