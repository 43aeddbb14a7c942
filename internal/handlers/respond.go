package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.NewApiResponse(status, data, message))
}

// respondError converts err into the error envelope. Client errors carry the
// AppError message; server errors are logged and reported generically.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.NewErrorResponse(fallback))
		return
	}

	message := fallback
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	} else {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			message = "resource not found"
		case errors.Is(err, apperrors.ErrUnauthorized):
			message = "unauthorized request"
		case errors.Is(err, apperrors.ErrForbidden):
			message = "forbidden"
		case errors.Is(err, apperrors.ErrDuplicate):
			message = "resource already exists"
		}
	}
	logger.Debug("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.NewErrorResponse(message))
}

// currentIdentity returns the user attached by the session middleware, writing a
// 401 when it is missing.
func currentIdentity(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("unauthorized request"))
		return nil, false
	}
	return user, true
}

// formFile opens an optional multipart file. It returns nil when the field is absent.
// The caller must invoke the returned close func.
func formFile(c *gin.Context, field string) (*dto.FileUpload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperrors.Validationf("invalid %s upload", field)
	}
	var file multipart.File
	file, err = header.Open()
	if err != nil {
		return nil, func() {}, apperrors.Validationf("invalid %s upload", field)
	}
	return &dto.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, func() { _ = file.Close() }, nil
}

const defaultUploadLimitMB = 100

// uploadLimit returns the maximum multipart body size in bytes.
func uploadLimit(cfg *config.Config) int64 {
	mb := cfg.MaxUploadSizeMB
	if mb <= 0 {
		mb = defaultUploadLimitMB
	}
	return mb << 20
}
