package config

import "fmt"

const (
	// DefaultJournalName names the journal document when nothing is configured.
	DefaultJournalName = "Journal"
	// DefaultLocale drives date formatting when nothing is configured.
	DefaultLocale = "en-US"

	// KeyJournalName and KeyLocale are the persisted setting keys.
	KeyJournalName = "journalName"
	KeyLocale      = "locale"
)

// Settings is the persisted configuration record.
type Settings struct {
	JournalName string `yaml:"journalName"`
	Locale      string `yaml:"locale"`
}

// Defaults returns the settings used when the store holds nothing.
func Defaults() Settings {
	return Settings{
		JournalName: DefaultJournalName,
		Locale:      DefaultLocale,
	}
}

// DocumentPath is the vault path of the journal document.
func (s Settings) DocumentPath() string {
	return s.JournalName + ".md"
}

// Get returns the value stored under key.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyJournalName:
		return s.JournalName, nil
	case KeyLocale:
		return s.Locale, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s|%s)", ErrUnknownSetting, key, KeyJournalName, KeyLocale)
	}
}

// With returns a copy of s with key set to value. Values are not validated.
func (s Settings) With(key, value string) (Settings, error) {
	switch key {
	case KeyJournalName:
		s.JournalName = value
	case KeyLocale:
		s.Locale = value
	default:
		return s, fmt.Errorf("%w: %q (expected %s|%s)", ErrUnknownSetting, key, KeyJournalName, KeyLocale)
	}
	return s, nil
}

// Keys lists the setting keys in a stable order.
func Keys() []string {
	return []string{KeyJournalName, KeyLocale}
}
