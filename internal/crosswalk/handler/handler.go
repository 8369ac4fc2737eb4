package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/stu2454/enableNSWmapping/internal/config"
	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
	"github.com/stu2454/enableNSWmapping/internal/crosswalk/service"
	"github.com/stu2454/enableNSWmapping/internal/fileio"
	"github.com/stu2454/enableNSWmapping/internal/middleware"
	"github.com/stu2454/enableNSWmapping/internal/report"
)

// Crosswalk handles POST /crosswalk: two uploaded tables in, JSON result
// out. Form fields: enable_file, ndis_file, confidence_threshold,
// include_repair_codes, enable_header_row, ndis_header_row.
func Crosswalk(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		res, status, err := runFromRequest(r, cfg)
		if err != nil {
			http.Error(w, err.Error(), status)
			log.Warn().Err(err).Int("status", status).Msg("crosswalk rejected")
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("source_rows", res.Meta.TotalItems).
			Int("mapped", res.Meta.MappedItems).
			Int("threshold", res.Meta.ConfidenceThreshold).
			Dur("elapsed", time.Since(start)).
			Msg("crosswalk done")
	}
}

// CrosswalkReport handles POST /crosswalk/report: same inputs, styled
// Excel workbook out.
func CrosswalkReport(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		res, status, err := runFromRequest(r, cfg)
		if err != nil {
			http.Error(w, err.Error(), status)
			log.Warn().Err(err).Int("status", status).Msg("report rejected")
			return
		}

		f, err := report.Build(res)
		if err != nil {
			http.Error(w, "failed to render report: "+err.Error(), http.StatusInternalServerError)
			log.Error().Err(err).Msg("render report")
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("EnableNSW_NDIS_Crosswalk_%s.xlsx", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := f.Write(w); err != nil {
			log.Error().Err(err).Msg("write report")
			return
		}

		log.Info().
			Int("source_rows", res.Meta.TotalItems).
			Dur("elapsed", time.Since(start)).
			Msg("report done")
	}
}

// runFromRequest decodes the uploaded tables and executes the crosswalk.
// The returned status is the HTTP code to use when err is non-nil.
func runFromRequest(r *http.Request, cfg config.Config) (*model.Result, int, error) {
	defer r.Body.Close()
	if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("bad multipart form: %w", err)
	}

	enableFile, enableHdr, err := r.FormFile("enable_file")
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing enable_file: %w", err)
	}
	defer enableFile.Close()

	ndisFile, ndisHdr, err := r.FormFile("ndis_file")
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing ndis_file: %w", err)
	}
	defer ndisFile.Close()

	enableTable, err := fileio.ReadTable(enableFile, enableHdr.Filename, atoi(r.FormValue("enable_header_row"), 1))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read EnableNSW data: %w", err)
	}
	ndisTable, err := fileio.ReadTable(ndisFile, ndisHdr.Filename, atoi(r.FormValue("ndis_header_row"), 1))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read NDIS data: %w", err)
	}

	entries, err := sourceEntries(enableTable)
	if err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}

	catalog, err := service.BuildCatalog(ndisTable.Headers, ndisTable.Rows)
	if err != nil {
		var schemaErr *service.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, http.StatusUnprocessableEntity, fmt.Errorf("NDIS data validation failed: %w", err)
		}
		return nil, http.StatusInternalServerError, err
	}

	opts := model.Options{
		Threshold:          service.ClampThreshold(atoi(r.FormValue("confidence_threshold"), cfg.ConfidenceThreshold)),
		IncludeRepairCodes: toBool(r.FormValue("include_repair_codes"), cfg.IncludeRepairCodes),
	}

	res := service.Run(entries, catalog, service.DefaultRules(), opts)
	return &res, http.StatusOK, nil
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}
