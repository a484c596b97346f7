package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Theme values accepted by the preference store.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidTheme rejects preference values outside the supported pair.
var ErrInvalidTheme = errors.New("theme must be light or dark")

func themeKey(userID string) string {
	return "pref:theme:" + userID
}

// SetTheme persists a user's theme preference under a fixed key.
// The preference has no TTL: it survives logout, only the session does not.
func (c *Cache) SetTheme(ctx context.Context, userID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}

	if err := c.client.Set(ctx, themeKey(userID), theme, 0).Err(); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}

	return nil
}

// GetTheme returns the user's persisted theme, defaulting to light.
func (c *Cache) GetTheme(ctx context.Context, userID string) (string, error) {
	theme, err := c.client.Get(ctx, themeKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return ThemeLight, nil
		}
		return "", fmt.Errorf("failed to read theme: %w", err)
	}

	return theme, nil
}
