package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	json "github.com/goccy/go-json"

	"pairflow/internal/consts"
	"pairflow/internal/model"
)

// 一次运行两份产物：逐笔 CSV 追加文件 + 运行结束的 JSON 汇总。
// 每次追加都开文件写完即关，进程中断也不丢已落盘的行。

var csvHeader = []string{
	"timestamp", "cycle", "action", "leg", "price", "size", "cost",
	"leg_qty", "leg_avg_price", "total_spent", "order_id", "status",
	"failure_reason", "reason",
}

type FileRecorder struct {
	mu         sync.Mutex
	tradesPath string
	sumPath    string
}

func New(dir, runID string) (*FileRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	r := &FileRecorder{
		tradesPath: filepath.Join(dir, runID+"_trades.csv"),
		sumPath:    filepath.Join(dir, runID+"_summary.json"),
	}
	if err := r.appendRow(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return r, nil
}

func (r *FileRecorder) TradesPath() string  { return r.tradesPath }
func (r *FileRecorder) SummaryPath() string { return r.sumPath }

func (r *FileRecorder) Append(rec *model.TradeRecord) error {
	row := []string{
		rec.Timestamp.Format(consts.TimeLayoutMs),
		strconv.FormatInt(rec.Cycle, 10),
		string(rec.Action),
		string(rec.Leg),
		fmtNum(rec.Price),
		fmtNum(rec.Size),
		fmtNum(rec.Cost),
		fmtNum(rec.LegQty),
		fmtNum(rec.LegAvgPrice),
		fmtNum(rec.TotalSpent),
		strconv.FormatInt(rec.OrderID, 10),
		string(rec.Status),
		rec.FailureReason,
		rec.Reason,
	}
	return r.appendRow(row)
}

func (r *FileRecorder) appendRow(row []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.tradesPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteSummary 汇总每次整体重写，一次运行只有一份
func (r *FileRecorder) WriteSummary(s *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(r.sumPath, data, 0o644)
}

func fmtNum(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
