package toolcompare

import (
	"context"
	"time"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoRefresher = (*client)(nil)

// AutoRefresher provides controls for reloading the comparison in the background.
type AutoRefresher interface {
	// AutoRefreshOn begins periodic reloads
	AutoRefreshOn() error

	// AutoRefreshOff stops periodic reloads
	AutoRefreshOff() error
}

// AutoRefreshOn begins periodic reloads at the configured interval.
func (c *client) AutoRefreshOn() error {
	if c.options.autoRefreshInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoRefreshInterval",
			Value:   c.options.autoRefreshInterval,
			Message: "refresh interval must be positive",
		}
	}

	// Stop any existing refresh loop to prevent resource leaks
	if err := c.AutoRefreshOff(); err != nil {
		return err
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Recreate stopCh since it was closed in AutoRefreshOff
	c.stopCh = make(chan struct{})
	c.refreshTicker = time.NewTicker(c.options.autoRefreshInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.refreshCancel = cancel

	go func(parentCtx context.Context, ticker *time.Ticker, stopCh <-chan struct{}) {
		for {
			select {
			case <-ticker.C:
				loadCtx, loadCancel := context.WithTimeout(parentCtx, constants.RefreshTimeout)
				c.Load(loadCtx)
				loadCancel()
			case <-parentCtx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}(ctx, c.refreshTicker, c.stopCh)

	c.options.logger.Debug().
		Dur("interval", c.options.autoRefreshInterval).
		Msg("Auto-refresh started")
	return nil
}

// AutoRefreshOff stops periodic reloads.
func (c *client) AutoRefreshOff() error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.refreshTicker != nil {
		c.refreshTicker.Stop()
		c.refreshTicker = nil
	}
	if c.refreshCancel != nil {
		c.refreshCancel()
		c.refreshCancel = nil
	}
	select {
	case <-c.stopCh:
		// Already closed
	default:
		close(c.stopCh)
	}
	return nil
}
