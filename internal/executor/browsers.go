package executor

import (
	"context"
	"sync"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

type browserSlot struct {
	once    sync.Once
	browser driver.Browser
	err     error
}

// browserSet launches at most one browser per project, on first request.
// A failed launch is remembered and returned to every later caller.
type browserSet struct {
	drv  driver.Driver
	opts driver.Options

	mu    sync.Mutex
	slots map[string]*browserSlot
	order []string
}

func newBrowserSet(drv driver.Driver, opts driver.Options) *browserSet {
	return &browserSet{drv: drv, opts: opts, slots: make(map[string]*browserSlot)}
}

func (b *browserSet) get(ctx context.Context, project config.ProjectProfile) (driver.Browser, error) {
	b.mu.Lock()
	slot, ok := b.slots[project.Name]
	if !ok {
		slot = &browserSlot{}
		b.slots[project.Name] = slot
		b.order = append(b.order, project.Name)
	}
	b.mu.Unlock()

	slot.once.Do(func() {
		logger := ctxlog.FromContext(ctx)
		logger.Info("🚀 Launching browser", "project", project.Name, "browser", project.Device.Browser, "driver", b.drv.Name())
		slot.browser, slot.err = b.drv.Launch(ctx, project, b.opts)
	})
	return slot.browser, slot.err
}

// closeAll closes every launched browser in launch order.
func (b *browserSet) closeAll(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range b.order {
		slot := b.slots[name]
		if slot.browser == nil {
			continue
		}
		logger.Debug("Closing browser.", "project", name)
		if err := slot.browser.Close(); err != nil {
			logger.Warn("Failed to close browser.", "project", name, "error", err)
		}
	}
}
