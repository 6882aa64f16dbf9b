package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/aggregate"
	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/contract"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/export"
	"github.com/alexanderramin/timesheet/internal/export/docx"
	"github.com/alexanderramin/timesheet/internal/export/xlsx"
	"github.com/alexanderramin/timesheet/internal/worklog"
	"github.com/google/uuid"
)

type convertService struct {
	cfg      config.Config
	parser   *worklog.Parser
	log      domain.Logger
	observer UseCaseObserver
	now      func() time.Time
}

// NewConvertService wires the worklog pipeline. Progress and diagnostic
// lines go to log; a nil log discards them.
func NewConvertService(
	cfg config.Config,
	loc *time.Location,
	log domain.Logger,
	observers ...UseCaseObserver,
) ConvertService {
	if log == nil {
		log = domain.NopLogger
	}
	return &convertService{
		cfg:      cfg,
		parser:   worklog.NewParser(worklog.WithLocation(loc)),
		log:      log,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *convertService) Convert(ctx context.Context, req contract.ConvertRequest) (resp *contract.ConvertResponse, err error) {
	startedAt := time.Now().UTC()
	runID := uuid.NewString()
	fields := map[string]any{
		"worklog": req.WorklogName,
		"weekly":  req.Weekly,
		"legend":  req.IncludeLegend,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "convert",
			RunID:     runID,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	if req.Now != nil {
		now = *req.Now
	}
	resp = &contract.ConvertResponse{RunID: runID, GeneratedAt: now}

	s.log("Reading files...")
	var daily []domain.WorklogRow
	daily, err = s.parser.Parse(req.Worklog, s.log)
	if err != nil {
		return nil, fmt.Errorf("reading worklog: %w", err)
	}
	if len(daily) == 0 {
		err = &domain.EmptyResultError{Stage: "normalize"}
		return nil, err
	}
	resp.SourceRows = len(daily)
	fields["source_rows"] = len(daily)
	s.log(fmt.Sprintf("Usable worklog rows: %d", len(daily)))

	if strings.TrimSpace(req.Areas) != "" {
		s.log("Reading optional work areas CSV...")
		resp.Areas, err = areas.Parse(req.Areas)
		if err != nil {
			return nil, fmt.Errorf("reading work areas: %w", err)
		}
		s.log(fmt.Sprintf("Loaded work areas: %d", resp.Areas.Len()))
		resp.Unmapped = resp.Areas.Missing(daily)
		resp.Warnings = MappingWarnings(resp.Unmapped)
		for _, w := range resp.Warnings {
			s.log(w)
		}
		fields["areas"] = resp.Areas.Len()
		fields["unmapped_rows"] = len(resp.Unmapped)
	}

	resp.Rows, err = RowsForExport(daily, req.Weekly)
	if err != nil {
		return nil, err
	}
	resp.TotalHours = export.SumHours(resp.Rows)
	fields["export_rows"] = len(resp.Rows)
	s.log("Processing finished.")

	includeLegend := req.IncludeLegend && resp.Areas != nil
	if req.Wants(contract.FormatXlsx) {
		var data []byte
		data, err = xlsx.Render(resp.Rows, resp.Areas, xlsx.Options{
			Weekly:        req.Weekly,
			IncludeLegend: includeLegend,
			SheetName:     s.cfg.SheetName,
			WidthChars:    s.cfg.SheetWidthChars,
			Created:       now,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering xlsx: %w", err)
		}
		resp.Outputs = append(resp.Outputs, contract.Output{
			Format:   contract.FormatXlsx,
			FileName: ResultFileName(req.WorklogName, contract.FormatXlsx),
			Data:     data,
		})
	}
	if req.Wants(contract.FormatDocx) {
		var data []byte
		data, err = docx.Render(req.Template, resp.Rows, resp.Areas, docx.Options{
			Weekly:             req.Weekly,
			IncludeLegend:      includeLegend,
			Marker:             s.cfg.Marker,
			FontSizeHalfPoints: s.cfg.FontSizeHalfPoints,
			TableWidthDxa:      s.cfg.TableWidthDxa,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering docx: %w", err)
		}
		resp.Outputs = append(resp.Outputs, contract.Output{
			Format:   contract.FormatDocx,
			FileName: ResultFileName(req.WorklogName, contract.FormatDocx),
			Data:     data,
		})
	}
	fields["outputs"] = len(resp.Outputs)

	return resp, nil
}

func (s *convertService) ParseAreas(ctx context.Context, text string) (idx *areas.Index, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "parse-areas",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	idx, err = areas.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("reading work areas: %w", err)
	}
	fields["areas"] = idx.Len()
	return idx, nil
}

func validateRequest(req contract.ConvertRequest) error {
	for _, f := range req.Formats {
		if f != contract.FormatDocx && f != contract.FormatXlsx {
			return &contract.ConvertError{Code: contract.ErrUnknownFormat, Message: fmt.Sprintf("unknown output format %q", f)}
		}
	}
	if req.Wants(contract.FormatDocx) && len(req.Template) == 0 {
		return &contract.ConvertError{Code: contract.ErrMissingTemplate, Message: "docx output needs a template"}
	}
	return nil
}

// RowsForExport returns daily rows unchanged, or their weekly aggregation.
// An empty result is a *domain.EmptyResultError.
func RowsForExport(daily []domain.WorklogRow, weekly bool) ([]domain.WorklogRow, error) {
	if !weekly {
		if len(daily) == 0 {
			return nil, &domain.EmptyResultError{Stage: "normalize"}
		}
		return daily, nil
	}
	rows := aggregate.Weekly(daily)
	if len(rows) == 0 {
		return nil, &domain.EmptyResultError{Stage: "aggregate"}
	}
	return rows, nil
}

// MappingWarnings renders one line per unmapped row followed by a summary.
func MappingWarnings(unmapped []areas.Unmapped) []string {
	if len(unmapped) == 0 {
		return nil
	}
	lines := make([]string, 0, len(unmapped)+1)
	for _, u := range unmapped {
		keys := "none"
		if len(u.Codes) > 0 {
			keys = strings.Join(u.Codes, ", ")
		}
		lines = append(lines, fmt.Sprintf(
			"Warning: no matching work area key for worklog row %d (user: %s, date: %s, keys: %s).",
			u.Position, u.User, u.DateKey, keys))
	}
	lines = append(lines, fmt.Sprintf(
		"Warnings found: %d worklog row(s) without matching work area keys.", len(unmapped)))
	return lines
}

// ResultFileName derives the output name from the worklog file name: the
// last extension is replaced (a leading dot is kept as part of the name) and
// an empty base falls back to "result".
func ResultFileName(inputName string, format contract.Format) string {
	name := strings.TrimSpace(inputName)
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "result"
	}
	return name + "." + string(format)
}
