package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-tables/internal/extractor"
	"github.com/insightdelivered/statement-tables/internal/models"
	"github.com/insightdelivered/statement-tables/internal/parser"
)

const statementPage = "Broker NV\n" +
	"Date      Product             Amount\n" +
	"01-02     Deposit             500,00\n" +
	"02-02     Interest            1,20\n" +
	"Total                         501,20"

func families() []parser.Family {
	return []parser.Family{{
		Name:   "broker",
		Detect: []string{"Broker NV"},
		Tables: []models.TableDeclaration{
			{Name: "trades", Headers: []string{"Date", "Product", "Amount"}, StopWord: "Total", Required: true},
		},
	}}
}

func setupTestApp(src extractor.TextSource) *fiber.App {
	p := parser.New(parser.Config{Source: src, Families: families()})
	app := fiber.New()
	New(p, nil).RegisterRoutes(app)
	return app
}

func staticSource(pages ...string) extractor.TextSource {
	return extractor.SourceFunc(func(path string) ([]string, error) {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		return pages, nil
	})
}

func upload(t *testing.T, app *fiber.App, url, filename string, fields map[string]string) (*http.Response, []byte) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(staticSource())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestExtractEndpointRequiresFile(t *testing.T) {
	app := setupTestApp(staticSource())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExtractEndpointRejectsNonPDF(t *testing.T) {
	app := setupTestApp(staticSource(statementPage))

	resp, body := upload(t, app, "/api/extract", "statement.txt", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "only PDF")
}

func TestExtractEndpoint(t *testing.T) {
	app := setupTestApp(staticSource(statementPage))

	resp, body := upload(t, app, "/api/extract", "statement.PDF", map[string]string{"header": "false"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var result ExtractResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Success)
	assert.Equal(t, "broker", result.Family)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), result.RequestID)

	require.Len(t, result.Tables, 1)
	tbl := result.Tables[0]
	assert.True(t, tbl.Found)
	assert.Equal(t, 0, tbl.Page)
	assert.Equal(t, []string{"Date", "Product", "Amount"}, tbl.Headers)
	assert.Equal(t, [][]string{{"01-02", "Deposit", "500,00"}, {"02-02", "Interest", "1,20"}}, tbl.Rows)
	assert.True(t, strings.HasPrefix(result.CSV, "Date,Product,Amount\n"))
}

func TestExtractEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    extractor.TextSource
		family string
		status int
	}{
		{name: "unknown family", src: staticSource(statementPage), family: "nope", status: fiber.StatusBadRequest},
		{name: "undetected family", src: staticSource("plain text"), status: fiber.StatusUnprocessableEntity},
		{name: "required table missing", src: staticSource("Broker NV\nnothing here"), status: fiber.StatusUnprocessableEntity},
		{
			name: "unreadable document",
			src: extractor.SourceFunc(func(string) ([]string, error) {
				return nil, errors.Wrap(extractor.ErrUnreadable, "scan.pdf")
			}),
			status: fiber.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(tt.src)
			resp, body := upload(t, app, "/api/extract", "statement.pdf", map[string]string{"family": tt.family})
			assert.Equal(t, tt.status, resp.StatusCode)

			var result ExtractResponse
			require.NoError(t, json.Unmarshal(body, &result))
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestTokensEndpoint(t *testing.T) {
	app := setupTestApp(staticSource("Datum  Mutatie"))

	resp, body := upload(t, app, "/api/tokens", "statement.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var result TokensResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "Mutatie", result.Words[1].Text)
	assert.Equal(t, &models.Position{Page: 0, Row: 0, Column: 7}, result.Words[1].Pos)
}
