package pricing

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/Hendyvelarius/lapiesbm-sub001/api"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/constants"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/pricing/reconcile"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/utils"
	"github.com/Hendyvelarius/lapiesbm-sub001/internal/checksum"
	"github.com/Hendyvelarius/lapiesbm-sub001/internal/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxUploadBytes = 32 << 20

var periodPattern = regexp.MustCompile(`^\d{6}$`)

// ImportResult is the API response for both preview and commit runs.
type ImportResult struct {
	BatchID       *uuid.UUID          `json:"batch_id,omitempty"`
	FileName      string              `json:"file_name"`
	FileFormat    string              `json:"file_format"`
	MaterialClass string              `json:"material_class"`
	Period        string              `json:"period"`
	Committed     bool                `json:"committed"`
	Admissible    bool                `json:"admissible"`
	TotalRows     int                 `json:"total_rows"`
	AdmittedRows  int                 `json:"admitted_rows"`
	InsertedCount int64               `json:"inserted_count"`
	DeletedCodes  []string            `json:"deleted_codes,omitempty"`
	Outcomes      []reconcile.Outcome `json:"outcomes"`
	Warnings      []string            `json:"warnings,omitempty"`
}

type importRequest struct {
	userID   string
	class    reconcile.MaterialClass
	period   string
	fileName string
	data     []byte
}

func readImportRequest(r *http.Request) (importRequest, string) {
	var req importRequest

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, "expected multipart form with a file field"
	}

	req.userID = strings.TrimSpace(r.FormValue("user_id"))
	if req.userID == "" {
		return req, constants.ErrUserIDRequired
	}

	class, ok := reconcile.ParseClassLabel(r.FormValue("material_class"))
	if !ok {
		return req, constants.ErrInvalidMaterialClass
	}
	req.class = class

	req.period = strings.TrimSpace(r.FormValue("period"))
	if !periodPattern.MatchString(req.period) {
		return req, constants.ErrPeriodRequired
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, "missing file upload"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, "failed to read uploaded file"
	}
	if len(data) == 0 {
		return req, "uploaded file is empty"
	}
	req.fileName = header.Filename
	req.data = data
	return req, ""
}

// ImportPreviewHandler runs the full reconciliation without writing anything.
func ImportPreviewHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runImport(w, r, pool, false)
	}
}

// ImportCommitHandler runs the reconciliation and, when the batch is
// admissible, replaces the price master for the class inside one transaction.
func ImportCommitHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runImport(w, r, pool, true)
	}
}

func runImport(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, commit bool) {
	req, errMsg := readImportRequest(r)
	if errMsg != "" {
		api.RespondWithError(w, http.StatusBadRequest, errMsg)
		return
	}
	ctx := r.Context()

	fileHash := checksum.Digest(req.data)

	if commit {
		exists, err := importedFileExists(ctx, pool, fileHash, req.class, req.period)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if exists {
			api.RespondWithError(w, http.StatusConflict, ErrFileAlreadyImported.Error())
			return
		}
	}

	grid, format, err := parseWorkbook(req.data)
	if err != nil {
		api.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rawRows, err := sheetToRawRows(grid, req.class)
	if err != nil {
		if errors.Is(err, errNoHeaderRow) {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// external snapshots are fetched up front; any failure aborts the whole
	// run before the pipeline starts
	entries, err := loadCatalog(ctx, pool)
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rates, err := loadRates(ctx, pool, req.period, config.BaseCurrency)
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	master, err := loadPriceMaster(ctx, pool, req.class)
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := reconcile.Run(reconcile.Input{
		TargetClass: req.class,
		Rows:        rawRows,
		Catalog:     reconcile.NewCatalog(entries),
		Rates:       rates,
	})
	if err != nil {
		api.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := ImportResult{
		FileName:      req.fileName,
		FileFormat:    format,
		MaterialClass: string(req.class),
		Period:        req.period,
		Admissible:    res.Batch.Admissible,
		TotalRows:     len(rawRows),
		AdmittedRows:  len(res.Batch.Rows),
		Outcomes:      res.Outcomes,
		Warnings:      collectWarnings(res.Outcomes),
	}

	if !commit {
		result.DeletedCodes = reconcile.DeleteSet(master, req.class)
		api.RespondWithPayload(w, true, "", result)
		return
	}

	if !res.Batch.Admissible {
		api.LogInfo("import blocked for class %s period %s: batch not admissible", req.class, req.period)
		api.RespondWithPayload(w, false, constants.ErrBatchNotAdmissible, result)
		return
	}

	batchID := uuid.New()
	records := reconcile.ToImportRecords(res.Batch, req.userID)
	deleteCodes := reconcile.DeleteSet(master, req.class)

	inserted, err := commitBatch(ctx, pool, commitParams{
		BatchID:     batchID,
		Class:       req.class,
		Period:      req.period,
		FileName:    req.fileName,
		FileHash:    fileHash,
		SubmittedBy: req.userID,
		TotalRows:   len(rawRows),
		Records:     records,
		DeleteCodes: deleteCodes,
	})
	if err != nil {
		api.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result.BatchID = &batchID
	result.Committed = true
	result.InsertedCount = inserted
	result.DeletedCodes = deleteCodes
	api.LogInfo("import committed: batch %s class %s period %s inserted %d replaced %d",
		batchID, req.class, req.period, inserted, len(deleteCodes))
	api.RespondWithPayload(w, true, "", result)
}

func collectWarnings(outcomes []reconcile.Outcome) []string {
	var warnings []string
	for _, o := range outcomes {
		switch {
		case o.Code == reconcile.OutcomeWarningZeroPrice:
			warnings = append(warnings, "row "+strconv.Itoa(o.RowNumber)+": price missing or non-positive, imported as 0")
		case o.LowConfidenceDensity:
			warnings = append(warnings, "row "+strconv.Itoa(o.RowNumber)+": unit dimension mismatch without usable density, price taken at face value")
		}
	}
	return warnings
}

// ListBatchesHandler returns the most recent import batches.
func ListBatchesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		batches, err := listImportBatches(r.Context(), pool, page.Limit, page.Offset)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", batches)
	}
}

// CurrentPricesHandler returns the live price master for one class.
func CurrentPricesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		class, ok := reconcile.ParseClassLabel(r.URL.Query().Get("material_class"))
		if !ok {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidMaterialClass)
			return
		}
		page, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		prices, err := listCurrentPrices(r.Context(), pool, class, page.Limit, page.Offset)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", prices)
	}
}
