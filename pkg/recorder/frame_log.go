package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"pairflow/internal/model"
)

// FrameLog 把每个决策周期的监控帧追加成 JSONL，一行一帧。
// websocket 掉线或没人订阅时，这份文件就是唯一的逐周期轨迹，
// 复盘工具按行读回即可重放整个运行。
type FrameLog struct {
	mu   sync.Mutex
	path string
}

func NewFrameLog(dir, runID string) *FrameLog {
	return &FrameLog{path: filepath.Join(dir, runID+"_frames.jsonl")}
}

func (l *FrameLog) Path() string { return l.path }

// Append 追加一帧。和逐笔 CSV 一样开文件写完即关，中断不丢已落盘的行。
func (l *FrameLog) Append(u *model.RunUpdate) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(data)
	return err
}
