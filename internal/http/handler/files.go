package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"filegate/internal/model"
	"filegate/internal/service"
)

type uploadResponse struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	Size        int64             `json:"size"`
	StorageType model.StorageType `json:"storage_type"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type listResponse struct {
	Data  []model.FileMetadata `json:"data"`
	Total int                  `json:"total"`
}

// DownloadFile streams a stored file. The route is public so links can be shared.
//
//	@Summary	Download a file
//	@Tags		files
//	@Produce	octet-stream
//	@Param		id		path	string	true	"File id"
//	@Param		preview	query	string	false	"1 to render inline when the file allows preview"
//	@Success	200
//	@Failure	404	{object}	errorPayload
//	@Router		/file/{id} [get]
func DownloadFile(svc service.StorageManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The id reaches span attributes exported after the request ends.
		id := utils.CopyString(c.Params("id"))
		rec, err := svc.Retrieve(c.UserContext(), id)
		if err != nil {
			log.Error("file_retrieve_failed",
				zap.String("request_id", requestIDFromCtx(c)),
				zap.String("id", id),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "download failed")
		}
		if rec == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", msg(langFromCtx(c), "file_not_found"))
		}

		inline := rec.PreviewEnabled && c.Query("preview") == "1"
		contentType := fiber.MIMEOctetStream
		if inline && rec.ContentType != "" {
			contentType = rec.ContentType
		}
		c.Set(fiber.HeaderContentDisposition, contentDisposition(rec.Filename, inline))
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		if inline {
			// Uploaded content renders on our origin; keep scripts and same-origin access off.
			c.Set(fiber.HeaderContentSecurityPolicy, "sandbox")
		}
		// fasthttp closes the stream once the body is written or the client goes away.
		return c.SendStream(rec.Content, int(rec.Size))
	}
}

// UploadFile stores a multipart upload in the requested backend.
//
//	@Summary	Upload a file
//	@Tags		files
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file			formData	file	true	"File content"
//	@Param		storage_type	formData	string	false	"blob or structured"
//	@Param		preview			formData	string	false	"Enable inline preview"
//	@Param		path			formData	string	false	"Logical folder"
//	@Success	201	{object}	uploadResponse
//	@Failure	400	{object}	errorPayload
//	@Failure	500	{object}	errorPayload
//	@Router		/upload [post]
func UploadFile(svc service.StorageManager, defaultType model.StorageType, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := langFromCtx(c)
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", msg(lang, "file_required"))
		}

		storageType := defaultType
		if v := c.FormValue("storage_type"); v != "" {
			if storageType, err = model.ParseStorageType(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STORAGE_TYPE", "invalid storage type")
			}
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		upload := &model.FileUpload{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Content:     f,
		}
		meta, err := svc.Store(c.UserContext(), upload, storageType, formBool(c.FormValue("preview")), c.FormValue("path"))
		switch {
		case errors.Is(err, service.ErrFileRequired):
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", msg(lang, "file_required"))
		case errors.Is(err, service.ErrInvalidStorageType):
			return writeError(c, fiber.StatusBadRequest, "INVALID_STORAGE_TYPE", "invalid storage type")
		case err != nil:
			log.Error("file_upload_failed",
				zap.String("request_id", requestIDFromCtx(c)),
				zap.String("filename", fh.Filename),
				zap.String("storage_type", string(storageType)),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", msg(lang, "upload_failed"))
		}

		log.Info("file_uploaded",
			zap.String("request_id", requestIDFromCtx(c)),
			zap.String("id", meta.ID),
			zap.Int64("size", meta.Size),
			zap.String("storage_type", string(meta.StorageType)),
		)
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			ID:          meta.ID,
			Filename:    meta.Filename,
			Size:        meta.Size,
			StorageType: meta.StorageType,
		})
	}
}

// DeleteFile removes the file named by the form field id.
//
//	@Summary	Delete a file
//	@Tags		files
//	@Accept		x-www-form-urlencoded
//	@Produce	json
//	@Param		id	formData	string	true	"File id"
//	@Success	200	{object}	deleteResponse
//	@Failure	400	{object}	deleteResponse
//	@Failure	500	{object}	errorPayload
//	@Router		/delete [post]
func DeleteFile(svc service.StorageManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := utils.CopyString(c.FormValue("id"))
		deleted, err := svc.Delete(c.UserContext(), id)
		if err != nil && !errors.Is(err, service.ErrIDRequired) {
			log.Error("file_delete_failed",
				zap.String("request_id", requestIDFromCtx(c)),
				zap.String("id", id),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", msg(langFromCtx(c), "delete_failed"))
		}
		if !deleted {
			return c.Status(fiber.StatusBadRequest).JSON(deleteResponse{Success: false})
		}
		return c.JSON(deleteResponse{Success: true})
	}
}

// ListFiles returns metadata for every stored file.
//
//	@Summary	List files
//	@Tags		files
//	@Produce	json
//	@Success	200	{object}	listResponse
//	@Failure	500	{object}	errorPayload
//	@Router		/api/files [get]
func ListFiles(svc service.StorageManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext())
		if err != nil {
			log.Error("file_list_failed", zap.String("request_id", requestIDFromCtx(c)), zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "list failed")
		}
		if files == nil {
			files = []model.FileMetadata{}
		}
		return c.JSON(listResponse{Data: files, Total: len(files)})
	}
}

// Index renders the file browser.
func Index(svc service.StorageManager, defaultType model.StorageType, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext())
		if err != nil {
			log.Error("file_list_failed", zap.String("request_id", requestIDFromCtx(c)), zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "list failed")
		}
		lang := langFromCtx(c)
		return render(c, fiber.StatusOK, "index.html", indexPage{
			Lang:           lang,
			Text:           messages[lang],
			Files:          files,
			DefaultStorage: defaultType,
		})
	}
}

// formBool accepts the values an HTML checkbox or API client would send.
func formBool(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
