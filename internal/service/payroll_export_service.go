package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
	"github.com/noah-isme/academy-backoffice-api/pkg/export"
	"github.com/noah-isme/academy-backoffice-api/pkg/storage"
)

type exportStorage interface {
	Save(relPath string, data []byte) (string, error)
	Open(relPath string) (*os.File, int64, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type exportSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string) (string, string, time.Time, error)
}

type payrollDetailer interface {
	Detailed(ctx context.Context, params dto.PayrollQueryParams) (*dto.PayrollDetailedResponse, error)
}

// PayrollExportConfig tunes export links and retention.
type PayrollExportConfig struct {
	PublicURL string
	APIPrefix string
	ResultTTL time.Duration
}

// ExportDownload is an opened export file. Callers close File.
type ExportDownload struct {
	File        *os.File
	Size        int64
	Filename    string
	ContentType string
}

// PayrollExportService renders the detailed payroll view to files behind signed links.
type PayrollExportService struct {
	payroll   payrollDetailer
	storage   exportStorage
	signer    exportSigner
	exporters map[string]export.Exporter
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       PayrollExportConfig
}

// NewPayrollExportService constructs the service with CSV, PDF and XLSX renderers.
func NewPayrollExportService(payroll payrollDetailer, store exportStorage, signer exportSigner, cfg PayrollExportConfig, metrics *MetricsService, logger *zap.Logger) *PayrollExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	exporters := map[string]export.Exporter{}
	for _, e := range []export.Exporter{export.NewCSVExporter(), export.NewPDFExporter(), export.NewXLSXExporter()} {
		exporters[e.Extension()] = e
	}
	return &PayrollExportService{
		payroll:   payroll,
		storage:   store,
		signer:    signer,
		exporters: exporters,
		validator: validator.New(),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate renders and stores an export, returning its signed download link.
func (s *PayrollExportService) Generate(ctx context.Context, req dto.PayrollExportRequest) (*dto.PayrollExportResponse, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid export request")
	}
	exporter, ok := s.exporters[req.Format]
	if !ok {
		return nil, appErrors.Validation("unsupported export format")
	}

	view, err := s.payroll.Detailed(ctx, req.PayrollQueryParams)
	if err != nil {
		return nil, err
	}
	dataset := payrollDataset(view)
	payload, err := exporter.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("payroll_%s_%s.%s", view.StartDate, view.EndDate, exporter.Extension())
	relPath, err := s.storage.Save(path.Join("payroll", exportID, filename), payload)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign export link")
	}
	s.metrics.RecordExport(req.Format)
	s.logger.Info("payroll export generated",
		zap.String("export_id", exportID),
		zap.String("format", req.Format),
		zap.Int("bytes", len(payload)),
	)

	return &dto.PayrollExportResponse{
		ExportID:    exportID,
		Format:      req.Format,
		Filename:    filename,
		DownloadURL: s.downloadURL(token),
		ExpiresAt:   expiresAt,
		Rows:        len(dataset.Rows),
	}, nil
}

// Open resolves a download token to the stored file.
func (s *PayrollExportService) Open(token string) (*ExportDownload, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) || errors.Is(err, storage.ErrInvalidToken) {
			return nil, appErrors.ErrExportExpired
		}
		return nil, appErrors.Internal(err, "failed to read export token")
	}
	file, size, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.ErrExportExpired
		}
		return nil, appErrors.Internal(err, "failed to open export")
	}
	filename := path.Base(relPath)
	contentType := "application/octet-stream"
	if e, ok := s.exporters[strings.TrimPrefix(path.Ext(filename), ".")]; ok {
		contentType = e.ContentType()
	}
	return &ExportDownload{File: file, Size: size, Filename: filename, ContentType: contentType}, nil
}

// Cleanup deletes exports older than the link lifetime.
func (s *PayrollExportService) Cleanup(ctx context.Context) error {
	removed, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return nil
}

func (s *PayrollExportService) downloadURL(token string) string {
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return fmt.Sprintf("%s%s/exports/%s", s.cfg.PublicURL, prefix, token)
}

var payrollColumns = []export.Column{
	{Title: "Coach", Width: 40},
	{Title: "Location", Width: 34},
	{Title: "Date", Width: 24},
	{Title: "Time", Width: 16},
	{Title: "Activity"},
	{Title: "Role", Width: 18},
	{Title: "Hours", Width: 18, Numeric: true},
	{Title: "Rate", Width: 20, Numeric: true},
	{Title: "Pay", Width: 24, Numeric: true},
}

// payrollDataset flattens the detailed view: activity lines, then a subtotal per location,
// a total per coach and a grand total.
func payrollDataset(view *dto.PayrollDetailedResponse) export.Dataset {
	subtitle := "All locations"
	if view.LocationID != "" {
		subtitle = "Location " + view.LocationID
	}
	ds := export.Dataset{
		Title:    fmt.Sprintf("Payroll %s to %s", view.StartDate, view.EndDate),
		Subtitle: subtitle,
		Columns:  payrollColumns,
	}
	for _, coach := range view.Coaches {
		for _, loc := range coach.Locations {
			for _, a := range loc.Activities {
				ds.Rows = append(ds.Rows, export.Row{Cells: []string{
					coach.CoachName, loc.LocationName, a.Date, a.Time, a.Description, string(a.Role),
					a.Hours.StringFixed(2), a.Rate.StringFixed(2), a.Pay.StringFixed(2),
				}})
			}
			ds.Rows = append(ds.Rows, export.Row{Emphasis: true, Cells: []string{
				coach.CoachName, loc.LocationName, "", "", "Location subtotal", "",
				loc.Totals.TotalHours.StringFixed(2), "", loc.Totals.TotalPay.StringFixed(2),
			}})
		}
		ds.Rows = append(ds.Rows, export.Row{Emphasis: true, Cells: []string{
			coach.CoachName, "", "", "", "Coach total", "",
			coach.Totals.TotalHours.StringFixed(2), "", coach.Totals.TotalPay.StringFixed(2),
		}})
	}
	ds.Rows = append(ds.Rows, export.Row{Emphasis: true, Cells: []string{
		"", "", "", "", "Grand total", "",
		view.Totals.TotalHours.StringFixed(2), "", view.Totals.TotalPay.StringFixed(2),
	}})
	return ds
}
