package knowledge

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/infrastructure/metrics"
)

// DefaultDebounceDelay 默认防抖延迟
const DefaultDebounceDelay = 300 * time.Millisecond

// Watcher 监听模块文件变化并重载 Store
type Watcher struct {
	path     string
	store    *Store
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	timerMu sync.Mutex
	timer   *time.Timer

	// reloaded 每次重载完成后通知（测试使用）
	reloaded chan error

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher 创建模块文件监听器
func NewWatcher(path string, store *Store, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}
	return &Watcher{
		path:     filepath.Clean(path),
		store:    store,
		watcher:  fw,
		logger:   log.NewModuleLogger("knowledge", "watcher"),
		debounce: debounce,
		reloaded: make(chan error, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start 开始监听
// 监听所在目录，以覆盖编辑器的原子保存（rename）
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.logger.Info("Watching modules file", "path", w.path)

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop 停止监听
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.wg.Wait()

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()

		w.logger.Info("Modules watcher stopped")
	})
}

// Reloaded 重载完成通知
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// schedule 防抖后重载
func (w *Watcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	modules, err := LoadFile(w.path)
	if err != nil {
		// 保留旧数据
		metrics.KnowledgeReloads.WithLabelValues("error").Inc()
		w.logger.Error("Failed to reload modules, keeping previous set", "path", w.path, "error", err)
	} else {
		w.store.Replace(modules)
		metrics.KnowledgeReloads.WithLabelValues("ok").Inc()
		w.logger.Info("Modules reloaded", "path", w.path, "modules", len(modules))
	}

	select {
	case w.reloaded <- err:
	default:
	}
}
