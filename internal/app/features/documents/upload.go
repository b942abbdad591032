// internal/app/features/documents/upload.go
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ohenegyan12/church-management/internal/app/system/authz"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/inputval"
	"github.com/ohenegyan12/church-management/internal/app/system/limits"
	"github.com/ohenegyan12/church-management/internal/app/system/navigation"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

type uploadInput struct {
	Name        string `validate:"required,max=200" label:"Document name"`
	Category    string `validate:"required" label:"Category"`
	FileType    string `validate:"omitempty" label:"File type"`
	Description string `validate:"max=1000" label:"Description"`
}

type uploadData struct {
	formutil.Base
	uploadInput
	Categories []string
	FileTypes  []string
	ReturnURL  string
}

func backURL(r *http.Request) string {
	return navigation.SafeBackURL(r, navigation.BackURLOptions{
		AllowedPrefix:      Base,
		ExcludedSubpaths:   []string{"/new", "/edit", "/delete"},
		Fallback:           Base,
		PreserveQueryParam: "category",
	})
}

// ServeUpload renders the upload modal, pre-selecting ?category=.
//
// Route: GET /administration/documents/new
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	in := uploadInput{Category: r.URL.Query().Get("category")}
	h.renderUpload(w, r, in, "")
}

// HandleUpload records a document. The file itself is optional: when one
// is attached its size and type are read from it and the bytes discarded.
//
// Route: POST /administration/documents
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadSize)
	if err := r.ParseMultipartForm(limits.MaxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		msg := "Invalid form data."
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "File is too large. Maximum size is 50 MB."
		}
		h.renderUpload(w, r, uploadInput{}, msg)
		return
	}

	in := uploadInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		FileType:    strings.TrimSpace(r.FormValue("file_type")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.renderUpload(w, r, in, res.First())
		return
	}
	if !slices.Contains(Categories, in.Category) {
		h.renderUpload(w, r, in, "Category must be one of the listed options.")
		return
	}

	doc := models.Document{
		Name:        in.Name,
		Category:    in.Category,
		FileType:    in.FileType,
		Description: in.Description,
		UploadedBy:  "Admin",
		Date:        h.Set.Documents.Now(),
	}
	if _, name, ok := authz.UserCtx(r); ok && name != "" {
		doc.UploadedBy = name
	}

	if file, hdr, err := r.FormFile("file"); err == nil {
		defer file.Close()
		kind, size, err := Inspect(file, hdr.Filename)
		if err != nil {
			h.Log.Warn("inspect upload failed", zap.Error(err))
			h.renderUpload(w, r, in, "The file could not be read.")
			return
		}
		doc.FileType, doc.Size = kind, SizeLabel(size)
	}
	if doc.FileType == "" {
		doc.FileType = FileTypes[0]
	}
	if doc.Size == "" {
		doc.Size = "-"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := h.Set.Documents.Insert(ctx, doc)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert document failed", err, "Unable to save the document.", Base)
		return
	}
	h.record(ctx, w, r, "created", saved, "Document uploaded successfully")
	formutil.Redirect(w, r, backURL(r))
}

func (h *Handler) renderUpload(w http.ResponseWriter, r *http.Request, in uploadInput, errMsg string) {
	data := uploadData{
		uploadInput: in,
		Categories:  Categories,
		FileTypes:   FileTypes,
		ReturnURL:   backURL(r),
	}
	formutil.SetBase(&data.Base, r, "Upload Document", Base)
	if errMsg != "" {
		data.SetError(errMsg)
	}
	formutil.Render(w, r, "document_upload", data)
}

// Inspect sniffs the content type of an uploaded file and counts its bytes.
func Inspect(r io.Reader, filename string) (kind string, size int64, err error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", 0, err
	}
	rest, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", 0, err
	}
	return Kind(mimetype.Detect(head[:n]), filename), int64(n) + rest, nil
}

// Kind maps a detected MIME type to the labels the library shows. Office
// formats are zip containers, so the file extension breaks ties.
func Kind(m *mimetype.MIME, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case m.Is("application/pdf"):
		return "PDF"
	case ext == ".doc" || ext == ".docx" || m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document") || m.Is("application/msword"):
		return "Word"
	case ext == ".xls" || ext == ".xlsx" || m.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet") || m.Is("text/csv"):
		return "Excel"
	case ext == ".ppt" || ext == ".pptx" || m.Is("application/vnd.openxmlformats-officedocument.presentationml.presentation"):
		return "PowerPoint"
	case strings.HasPrefix(m.String(), "image/"):
		return "Image"
	case m.Is("application/zip"):
		return "ZIP"
	}
	if ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return "File"
}

// SizeLabel renders a byte count the way the library lists sizes.
func SizeLabel(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
