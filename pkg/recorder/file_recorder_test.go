package recorder

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"pairflow/internal/model"
)

func TestFileRecorderTradeRows(t *testing.T) {
	r, err := New(t.TempDir(), "run-abc")
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	ts := time.Date(2025, 6, 3, 10, 0, 3, 0, time.UTC)
	recs := []*model.TradeRecord{
		{
			Timestamp: ts, Cycle: 1, Action: model.ActionBuyHigher, Leg: model.SideHigher,
			Price: 0.55, Size: 20, Cost: 11, OrderID: 1001,
			Status: model.RecordSubmitted, Reason: "probe rung 1/2 at 0.550",
		},
		{
			Timestamp: ts.Add(3 * time.Second), Cycle: 2, Action: model.ActionBuyHigher, Leg: model.SideHigher,
			Price: 0.553, Size: 20, Cost: 11.06, LegQty: 20, LegAvgPrice: 0.553, TotalSpent: 11.06,
			OrderID: 1001, Status: model.RecordFilled, Reason: "probe rung 1/2 at 0.550",
		},
		{
			Timestamp: ts.Add(6 * time.Second), Cycle: 3, Action: model.ActionBuyLower, Leg: model.SideLower,
			Price: 0.40, Size: 250, Cost: 100, OrderID: 1002,
			Status: model.RecordFailed, FailureReason: string(model.FailIlliquidity), Reason: "hedge toward 70% of higher size",
		},
	}
	for _, rec := range recs {
		if err := r.Append(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	f, err := os.Open(r.TradesPath())
	if err != nil {
		t.Fatalf("open trades file: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	if len(rows) != 4 { // 表头 + 3 行
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 14 || rows[0][0] != "timestamp" || rows[0][13] != "reason" {
		t.Fatalf("header wrong: %v", rows[0])
	}
	if rows[1][4] != "0.5500" || rows[1][11] != "submitted" {
		t.Fatalf("submitted row wrong: %v", rows[1])
	}
	if rows[2][8] != "0.5530" || rows[2][11] != "filled" {
		t.Fatalf("filled row wrong: %v", rows[2])
	}
	if rows[3][12] != "insufficient_liquidity" {
		t.Fatalf("failure reason missing: %v", rows[3])
	}
	t.Logf("✅ CSV 逐笔记录 14 列齐全")
}

func TestFileRecorderSummary(t *testing.T) {
	r, err := New(t.TempDir(), "run-xyz")
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	sum := &model.RunSummary{
		RunID:     "run-xyz",
		PoolID:    "BTC-USD-0",
		Preset:    "pairlock-1h",
		Seed:      42,
		StopCause: model.StopTimeEnd,
		Cycles:    1200,
		Fills:     9,
		PairCost:  0.93,
		SpentUSD:  131.2,
		PnlUSD:    8.8,
	}
	if err := r.WriteSummary(sum); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	// 汇总重写而非追加
	if err := r.WriteSummary(sum); err != nil {
		t.Fatalf("rewrite summary: %v", err)
	}

	data, err := os.ReadFile(r.SummaryPath())
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var got model.RunSummary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if got.RunID != "run-xyz" || got.Cycles != 1200 || got.StopCause != model.StopTimeEnd {
		t.Fatalf("summary round trip wrong: %+v", got)
	}
	t.Logf("✅ JSON 汇总写出可读回")
}

func TestFrameLogAppend(t *testing.T) {
	l := NewFrameLog(t.TempDir(), "run-frm")

	for cycle := int64(1); cycle <= 3; cycle++ {
		u := &model.RunUpdate{
			RunID:       "run-frm",
			Cycle:       cycle,
			Phase:       "entry",
			MinutesLeft: 55 - float64(cycle)*0.05,
			PairCost:    0.95,
			HigherAsk:   0.55,
			LowerAsk:    0.40,
		}
		if err := l.Append(u); err != nil {
			t.Fatalf("append frame %d: %v", cycle, err)
		}
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	if len(lines) != 3 {
		t.Fatalf("expected 3 frame lines, got %d", len(lines))
	}
	for i, line := range lines {
		var got model.RunUpdate
		if err := json.Unmarshal(line, &got); err != nil {
			t.Fatalf("line %d not valid JSON: %v", i, err)
		}
		if got.Cycle != int64(i+1) || got.RunID != "run-frm" {
			t.Fatalf("line %d round trip wrong: %+v", i, got)
		}
	}
	t.Logf("✅ 帧轨迹逐行追加可回放")
}
