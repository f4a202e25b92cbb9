package ingest

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"swim-admin/core/logger"
	"swim-admin/feature/ingest/parser"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles spreadsheet upload, preview and archive requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ingestion routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/convert")
	group.Post("/upload", h.HandleUpload)
	group.Post("/preview", h.HandlePreview)
	group.Get("/archive", h.HandleArchive)
}

// HandleUpload ingests one or more result spreadsheets.
// @Summary Upload Result Files
// @Description Parse, match and commit one or more result spreadsheets. Each file is committed in its own transaction; a failing file does not stop the batch.
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param dialect formData string true "Source dialect (swimrankings or seag)"
// @Param files formData file true "Result spreadsheets (.xlsx or .xls)"
// @Param year formData int false "Meet year (seag only)"
// @Param meet_city formData string false "Meet city (seag only)"
// @Param meet_name formData string false "Meet name (seag only)"
// @Param first_day_month formData int false "Month of the first competition day (seag only)"
// @Param first_day_day formData int false "Day of the first competition day (seag only)"
// @Success 200 {object} ingest.UploadResponse "Aggregate counts, merged issues and per-file outcomes"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /convert/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dialect, seag, err := requestDialect(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	uploads, err := readUploads(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	outcomes := h.service.CommitAll(c.Context(), dialect, seag, uploads)
	for _, fo := range outcomes {
		if fo.Error != "" {
			l.Warn("File ingestion failed", zap.String("file", fo.File), zap.String("error", fo.Error))
		}
	}

	return c.JSON(SummarizeUpload(outcomes))
}

// HandlePreview renders the annotated review spreadsheet for one file.
// @Summary Preview a Result File
// @Description Run the pipeline on a single file and return the annotated review spreadsheet. Performs no writes.
// @Tags convert
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param dialect formData string true "Source dialect (swimrankings or seag)"
// @Param files formData file true "Result spreadsheet (.xlsx or .xls)"
// @Success 200 {file} binary "Annotated spreadsheet; counts in X-Preview-Total, X-Preview-Matched and X-Preview-Unmatched headers"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /convert/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dialect, seag, err := requestDialect(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	uploads, err := readUploads(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(uploads) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "preview accepts exactly one file"})
	}

	rendered, summary, err := h.service.Preview(c.Context(), dialect, seag, uploads[0].Name, uploads[0].Data)
	if err != nil {
		var malformed *parser.MalformedInputError
		if errors.As(err, &malformed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Preview failed", zap.String("file", uploads[0].Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("X-Preview-Total", strconv.Itoa(summary.Total))
	c.Set("X-Preview-Matched", strconv.Itoa(summary.Matched))
	c.Set("X-Preview-Unmatched", strconv.Itoa(summary.Unmatched))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(rendered)
}

// HandleArchive lists archived uploads.
// @Summary List Archived Uploads
// @Description List the archived source spreadsheets, optionally narrowed to one dialect.
// @Tags convert
// @Produce json
// @Param dialect query string false "Source dialect filter"
// @Success 200 {array} ingest.ArchivedUpload "Archived uploads"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /convert/archive [get]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	uploads, err := h.service.ListArchive(c.Context(), c.Query("dialect"))
	if err != nil {
		l.Error("Archive listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if uploads == nil {
		uploads = []ArchivedUpload{}
	}
	return c.JSON(uploads)
}

// requestDialect reads the dialect tag and, for the SEAG dialect, the
// mandatory metadata fields from the form.
func requestDialect(c *fiber.Ctx) (parser.Dialect, *parser.SEAGMeta, error) {
	tag := c.FormValue("dialect", c.Query("dialect"))
	dialect, err := parser.ParseDialect(tag)
	if err != nil {
		return "", nil, err
	}

	if dialect != parser.DialectSEAG {
		return dialect, nil, nil
	}

	meta := &parser.SEAGMeta{
		Year:     formInt(c, "year"),
		City:     c.FormValue("meet_city"),
		MeetName: c.FormValue("meet_name"),
		Month:    formInt(c, "first_day_month"),
		Day:      formInt(c, "first_day_day"),
	}
	if err := meta.Validate(); err != nil {
		return "", nil, err
	}
	return dialect, meta, nil
}

func formInt(c *fiber.Ctx, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(c.FormValue(key)))
	return n
}

// readUploads collects the uploaded spreadsheets in submission order.
func readUploads(c *fiber.Ctx) ([]Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("request must be multipart/form-data with at least one file")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return nil, errors.New("no files attached under the files field")
	}

	uploads := make([]Upload, 0, len(headers))
	for _, header := range headers {
		name := strings.ToLower(header.Filename)
		if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
			return nil, errors.New("only .xlsx and .xls files are supported")
		}

		f, err := header.Open()
		if err != nil {
			return nil, errors.New("failed to open uploaded file " + header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.New("failed to read uploaded file " + header.Filename)
		}

		uploads = append(uploads, Upload{Name: header.Filename, Data: data})
	}
	return uploads, nil
}
