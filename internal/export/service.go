package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/calendar"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
)

const (
	SheetLoans       = "Loans"
	SheetPerformance = "Performance"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultLinkTTL = 24 * time.Hour
)

var ErrStorageDisabled = errors.New("object storage is not configured")

var loanHeader = []any{
	"Account Number", "Client", "Branch", "Phone Number", "Product", "Agent",
	"Original Amount", "Outstanding Balance", "Status", "Start Date", "Matured On",
	"Expected Repayment Date", "Past Due Date", "Remark",
}

var performanceHeader = []any{
	"Agent", "Assigned Loans", "Original Amount Assigned", "Payments Collected",
	"Amount Collected", "Paid Off Loans", "Outstanding Loans", "Outstanding Amount",
}

// ObjectStore uploads finished workbooks and hands out temporary links.
type ObjectStore interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Service renders the loan portfolio as a workbook and optionally publishes it.
type Service struct {
	store   ObjectStore
	clock   func() time.Time
	linkTTL time.Duration
}

// NewService creates an export service. A nil store disables Publish.
func NewService(store ObjectStore, linkTTL time.Duration) *Service {
	if linkTTL <= 0 {
		linkTTL = defaultLinkTTL
	}

	return &Service{store: store, clock: time.Now, linkTTL: linkTTL}
}

// FileName is the name a workbook generated now is saved under.
func (s *Service) FileName() string {
	return fmt.Sprintf("loans_%s.xlsx", s.clock().Format("20060102_150405"))
}

// Workbook renders every loan plus the per-agent performance table.
func (s *Service) Workbook(loans []loan.Loan, agents []agent.Agent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetLoans); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetPerformance); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	names := make(map[string]string, len(agents))
	for _, a := range agents {
		names[a.ID] = a.Name
	}

	rows := make([][]any, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, []any{
			l.AccountNumber, l.Client, l.Branch, l.PhoneNumber, l.Product, names[l.AssignedAgentID],
			money(l.OriginalAmount), money(l.OutstandingBalance), string(l.Status),
			dateCell(l.StartDate), dateCell(l.MaturedOn), dateCell(l.ExpectedRepaymentDate),
			dateCell(l.PassDueDate), l.Remark,
		})
	}

	if err := writeTable(f, SheetLoans, loanHeader, rows, headerStyle); err != nil {
		return nil, err
	}

	perf := loan.Performance(loans, agents)

	rows = make([][]any, 0, len(perf))
	for _, p := range perf {
		rows = append(rows, []any{
			p.Name, p.AssignedCount, money(p.OriginalAssigned), p.PaymentsCount,
			money(p.Collected), p.PaidOffCount, p.OutstandingCount, money(p.TotalOutstanding),
		})
	}

	if err := writeTable(f, SheetPerformance, performanceHeader, rows, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}

	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	return nil
}

// SaveToDir writes the workbook into dir and returns its path.
func (s *Service) SaveToDir(dir string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, s.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing workbook: %w", err)
	}

	return path, nil
}

// PublishEnabled reports whether an object store is configured.
func (s *Service) PublishEnabled() bool {
	return s.store != nil
}

// Publish uploads the workbook and returns a temporary download link.
func (s *Service) Publish(ctx context.Context, data []byte) (string, error) {
	if s.store == nil {
		return "", ErrStorageDisabled
	}

	key, err := s.store.Upload(ctx, s.FileName(), data)
	if err != nil {
		return "", fmt.Errorf("uploading workbook: %w", err)
	}

	url, err := s.store.PresignedURL(ctx, key, s.linkTTL)
	if err != nil {
		return "", fmt.Errorf("signing workbook link: %w", err)
	}

	return url, nil
}

// Summary renders the performance table as plain text, one agent per line.
func Summary(perf []loan.AgentPerformance) string {
	var sb strings.Builder

	for _, p := range perf {
		fmt.Fprintf(&sb, "* %s | %d loans | collected $%s | outstanding $%s\n",
			p.Name, p.AssignedCount, p.Collected.StringFixed(2), p.TotalOutstanding.StringFixed(2))
	}

	return sb.String()
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func dateCell(d calendar.Date) string {
	return d.String()
}
