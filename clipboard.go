package main

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// systemClipboard writes text to the OS clipboard, initialising it on first use.
type systemClipboard struct {
	once sync.Once
	err  error
}

func (c *systemClipboard) WriteText(b []byte) error {
	c.once.Do(func() {
		c.err = clipboard.Init()
	})
	if c.err != nil {
		return fmt.Errorf("clipboard: init: %w", c.err)
	}
	clipboard.Write(clipboard.FmtText, b)
	return nil
}
