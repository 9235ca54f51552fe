package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/cometcontrol/comet-backend/api/responses"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/storage/blob"
)

// uploadMemoryLimit caps how much of a multipart body is buffered in memory;
// the rest spills to temp files.
const uploadMemoryLimit = 32 << 20

// AdminUpload handles POST /api/admin/upload. Multipart form with a "file"
// part and a "type" field naming the upload kind.
func AdminUpload(store blob.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeMalformed, err, "malformed multipart form"))
			return
		}

		kind := r.FormValue("type")
		if kind == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file and type are required"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file and type are required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to read upload"))
			return
		}
		if len(data) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "empty file cannot be uploaded"))
			return
		}

		url, err := store.Put(r.Context(), kind, header.Filename, data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapUploadError(err))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"url": url})
	}
}

func mapUploadError(err error) error {
	switch {
	case errors.Is(err, blob.ErrUnknownKind):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid upload type, use: image, model, document, software")
	case errors.Is(err, blob.ErrExtensionType):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file extension not allowed for this type")
	case errors.Is(err, blob.ErrTooLarge):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file exceeds the size limit for this type")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upload failed")
	}
}
