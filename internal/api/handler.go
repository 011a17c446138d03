// Package api serves table extraction over HTTP.
package api

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/insightdelivered/statement-tables/internal/extractor"
	"github.com/insightdelivered/statement-tables/internal/models"
	"github.com/insightdelivered/statement-tables/internal/parser"
	"github.com/insightdelivered/statement-tables/internal/writer"
)

// Version is reported by the health endpoint and in every response.
const Version = "2.0.0"

// ExtractResponse is the JSON response of /api/extract.
type ExtractResponse struct {
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Family    string        `json:"family,omitempty"`
	PageCount int           `json:"pageCount,omitempty"`
	Tables    []TableResult `json:"tables,omitempty"`
	CSV       string        `json:"csv,omitempty"`
	Version   string        `json:"version,omitempty"`
}

// TableResult is one extracted table. Rows hold one string per header.
type TableResult struct {
	Name     string     `json:"name"`
	Required bool       `json:"required"`
	Found    bool       `json:"found"`
	Page     int        `json:"page"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
}

// TokensResponse is the JSON response of /api/tokens.
type TokensResponse struct {
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Count     int           `json:"count"`
	Words     []models.Word `json:"words"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Parser *parser.Parser
	Logger *slog.Logger
}

// New returns a handler backed by p.
func New(p *parser.Parser, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Parser: p, Logger: logger}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(h.requestID)
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/extract", h.HandleExtract)
	app.Post("/api/tokens", h.HandleTokens)
}

func (h *Handler) requestID(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("requestId", id)
	c.Set(fiber.HeaderXRequestID, id)
	return c.Next()
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleExtract extracts every table of the uploaded statement.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	id := reqID(c)
	path, cleanup, err := h.saveUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{Error: err.Error(), RequestID: id})
	}
	defer cleanup()

	family := c.FormValue("family")
	includeHeader := c.FormValue("header") != "false"
	log := h.Logger.With("requestId", id, "family", family)

	st, err := h.Parser.Parse(path, family)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return c.Status(statusFor(err)).JSON(ExtractResponse{Error: err.Error(), RequestID: id})
	}

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.Write(&csvBuf, st); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ExtractResponse{Error: err.Error(), RequestID: id})
	}

	resp := ExtractResponse{
		Success:   true,
		RequestID: id,
		Family:    string(st.Family),
		PageCount: st.PageCount,
		Tables:    make([]TableResult, 0, len(st.Tables)),
		CSV:       csvBuf.String(),
		Version:   Version,
	}
	for _, nt := range st.Tables {
		resp.Tables = append(resp.Tables, tableResult(nt))
	}
	log.Info("statement extracted", "tables", len(resp.Tables), "pages", st.PageCount)
	return c.JSON(resp)
}

// HandleTokens returns the positioned words of the uploaded PDF.
func (h *Handler) HandleTokens(c *fiber.Ctx) error {
	id := reqID(c)
	path, cleanup, err := h.saveUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(TokensResponse{Error: err.Error(), RequestID: id})
	}
	defer cleanup()

	words, err := h.Parser.Tokens(path)
	if err != nil {
		h.Logger.Warn("tokenization failed", "requestId", id, "error", err)
		return c.Status(statusFor(err)).JSON(TokensResponse{Error: err.Error(), RequestID: id})
	}
	if words == nil {
		words = []models.Word{}
	}
	return c.JSON(TokensResponse{Success: true, RequestID: id, Count: len(words), Words: words})
}

// saveUpload stores the multipart "file" field in a temporary file. The
// returned cleanup removes it.
func (h *Handler) saveUpload(c *fiber.Ctx) (string, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("no file uploaded, use form field 'file'")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return "", nil, errors.New("only PDF files are supported")
	}

	dir, err := os.MkdirTemp("", "statement-*")
	if err != nil {
		return "", nil, errors.Wrap(err, "create temp dir")
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, "upload.pdf")
	if err := c.SaveFile(fh, path); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, "save upload")
	}
	return path, cleanup, nil
}

func tableResult(nt models.NamedTable) TableResult {
	tr := TableResult{
		Name:     nt.Name,
		Required: nt.Required,
		Found:    nt.Table.Found(),
		Page:     -1,
		Headers:  nt.Table.Headers(),
		Rows:     [][]string{},
	}
	if !tr.Found {
		return tr
	}
	tr.Page = nt.Table.HeaderRow.Page
	for _, r := range nt.Table.Rows {
		tr.Rows = append(tr.Rows, r.Texts())
	}
	return tr
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, parser.ErrUnknownFamily):
		return fiber.StatusBadRequest
	case errors.Is(err, parser.ErrUndetected),
		errors.Is(err, parser.ErrRequiredTableMissing),
		errors.Is(err, extractor.ErrUnreadable):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func reqID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestId").(string)
	return id
}
