package journal

import (
	"bytes"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/rustyeddy/nodesim/sim"
)

// dayParquetRow is the Parquet layout of one journaled day.
type dayParquetRow struct {
	RunID                   string  `parquet:"name=run_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	RunCreated              int64   `parquet:"name=run_created, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Day                     int32   `parquet:"name=day, type=INT32"`
	CapitalPlusClaim        float64 `parquet:"name=capital_plus_claim, type=DOUBLE"`
	StartCapital            float64 `parquet:"name=start_capital, type=DOUBLE"`
	CumulativeClaim         float64 `parquet:"name=cumulative_claim, type=DOUBLE"`
	Seed                    float64 `parquet:"name=seed, type=DOUBLE"`
	WinCount                int64   `parquet:"name=win_count, type=INT64"`
	LossCount               int64   `parquet:"name=loss_count, type=INT64"`
	TotalProfit             float64 `parquet:"name=total_profit, type=DOUBLE"`
	TotalLoss               float64 `parquet:"name=total_loss, type=DOUBLE"`
	DailyPnL                float64 `parquet:"name=daily_pnl, type=DOUBLE"`
	DailyFee                float64 `parquet:"name=daily_fee, type=DOUBLE"`
	SelfReferral            float64 `parquet:"name=self_referral, type=DOUBLE"`
	NetPnL                  float64 `parquet:"name=net_pnl, type=DOUBLE"`
	EndCapital              float64 `parquet:"name=end_capital, type=DOUBLE"`
	InsuranceNodeCumulative float64 `parquet:"name=insurance_node_cumulative, type=DOUBLE"`
	NewNodesToday           int64   `parquet:"name=new_nodes_today, type=INT64"`
	CarryoverLoss           float64 `parquet:"name=carryover_loss, type=DOUBLE"`
	WaitingNodes            int64   `parquet:"name=waiting_nodes, type=INT64"`
	ActiveNodes             int64   `parquet:"name=active_nodes, type=INT64"`
	ExpiredNodes            int64   `parquet:"name=expired_nodes, type=INT64"`
	NewlyActivatedNodes     int64   `parquet:"name=newly_activated_nodes, type=INT64"`
	TodayAirdropTotal       float64 `parquet:"name=today_airdrop_total, type=DOUBLE"`
	CumulativeAirdrop       float64 `parquet:"name=cumulative_airdrop, type=DOUBLE"`
	TotalCapital            float64 `parquet:"name=total_capital, type=DOUBLE"`
}

func newDayParquetRow(runID string, created int64, d sim.DayResult) dayParquetRow {
	return dayParquetRow{
		RunID:                   runID,
		RunCreated:              created,
		Day:                     int32(d.Day),
		CapitalPlusClaim:        d.CapitalPlusClaim,
		StartCapital:            d.StartCapital,
		CumulativeClaim:         d.CumulativeClaim,
		Seed:                    d.Seed,
		WinCount:                int64(d.WinCount),
		LossCount:               int64(d.LossCount),
		TotalProfit:             d.TotalProfit,
		TotalLoss:               d.TotalLoss,
		DailyPnL:                d.DailyPnL,
		DailyFee:                d.DailyFee,
		SelfReferral:            d.SelfReferral,
		NetPnL:                  d.NetPnL,
		EndCapital:              d.EndCapital,
		InsuranceNodeCumulative: d.InsuranceNodeCumulative,
		NewNodesToday:           int64(d.NewNodesToday),
		CarryoverLoss:           d.CarryoverLoss,
		WaitingNodes:            int64(d.WaitingNodes),
		ActiveNodes:             int64(d.ActiveNodes),
		ExpiredNodes:            int64(d.ExpiredNodes),
		NewlyActivatedNodes:     int64(d.NewlyActivatedNodes),
		TodayAirdropTotal:       d.TodayAirdropTotal,
		CumulativeAirdrop:       d.CumulativeAirdrop,
		TotalCapital:            d.TotalCapital,
	}
}

type parquetMemFile struct {
	buffer *bytes.Buffer
}

func newParquetMemFile() *parquetMemFile {
	return &parquetMemFile{buffer: &bytes.Buffer{}}
}

func (m *parquetMemFile) Create(string) (source.ParquetFile, error) { return m, nil }
func (m *parquetMemFile) Open(string) (source.ParquetFile, error)   { return m, nil }
func (m *parquetMemFile) Seek(int64, int) (int64, error)            { return int64(m.buffer.Len()), nil }
func (m *parquetMemFile) Read([]byte) (int, error)                  { return 0, fmt.Errorf("read not supported") }
func (m *parquetMemFile) Write(b []byte) (int, error)               { return m.buffer.Write(b) }
func (m *parquetMemFile) Close() error                              { return nil }
func (m *parquetMemFile) Bytes() []byte                             { return m.buffer.Bytes() }

// ParquetJournal streams day rows into a snappy-compressed Parquet
// file. Each run recorded through Record is flushed as its own row
// group, so only the run in progress is held in memory. The footer is
// written on Close.
type ParquetJournal struct {
	fw source.ParquetFile
	pw *writer.ParquetWriter

	runID   string
	created int64
}

func NewParquet(path string) (*ParquetJournal, error) {
	if path == "" {
		return nil, fmt.Errorf("parquet journal path is required")
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(dayParquetRow), 1)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("new parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	return &ParquetJournal{fw: fw, pw: pw}, nil
}

func (j *ParquetJournal) RecordRun(r RunRecord) error {
	j.runID, j.created = r.RunID, r.Created.UnixMilli()
	return nil
}

func (j *ParquetJournal) RecordDay(runID string, d sim.DayResult) error {
	if err := j.pw.Write(newDayParquetRow(runID, j.createdFor(runID), d)); err != nil {
		return fmt.Errorf("write day record: %w", err)
	}
	return nil
}

// RecordDays writes a whole run and flushes it to the file.
func (j *ParquetJournal) RecordDays(runID string, days []sim.DayResult) error {
	created := j.createdFor(runID)
	for _, d := range days {
		if err := j.pw.Write(newDayParquetRow(runID, created, d)); err != nil {
			return fmt.Errorf("write day record: %w", err)
		}
	}
	if err := j.pw.Flush(true); err != nil {
		return fmt.Errorf("flush run %s: %w", runID, err)
	}
	return nil
}

func (j *ParquetJournal) createdFor(runID string) int64 {
	if runID == j.runID {
		return j.created
	}
	return 0
}

// Close writes the footer and closes the file.
func (j *ParquetJournal) Close() error {
	if err := j.pw.WriteStop(); err != nil {
		j.fw.Close()
		return fmt.Errorf("finalize parquet: %w", err)
	}
	if err := j.fw.Close(); err != nil {
		return fmt.Errorf("close parquet file: %w", err)
	}
	return nil
}

// EncodeRunParquet returns the days of one run as Parquet file contents.
func EncodeRunParquet(run RunRecord, days []sim.DayResult) ([]byte, error) {
	created := run.Created.UnixMilli()
	rows := make([]dayParquetRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, newDayParquetRow(run.RunID, created, d))
	}
	return encodeParquet(rows)
}

func encodeParquet(rows []dayParquetRow) ([]byte, error) {
	mem := newParquetMemFile()
	pw, err := writer.NewParquetWriter(mem, new(dayParquetRow), 1)
	if err != nil {
		return nil, fmt.Errorf("new parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, rec := range rows {
		if err := pw.Write(rec); err != nil {
			pw.WriteStop()
			return nil, fmt.Errorf("write day record: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize parquet: %w", err)
	}
	return mem.Bytes(), nil
}
