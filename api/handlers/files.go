package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	velog_errors "github.com/velog-io/velog-api/errors"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/internal/utils"
	"github.com/velog-io/velog-api/services/files"
)

type createUploadURLRequest struct {
	Type     string `json:"type"`
	RefID    string `json:"ref_id"`
	Filename string `json:"filename"`
	Filesize int64  `json:"filesize"`
}

type uploadURLResponse struct {
	ImageID   string `json:"image_id"`
	SignedURL string `json:"signed_url,omitempty"`
	ImageURL  string `json:"image_url"`
}

func toUploadURLResponse(result *interfaces.UploadURL) uploadURLResponse {
	return uploadURLResponse{
		ImageID:   result.Image.ID,
		SignedURL: result.SignedURL,
		ImageURL:  result.ImageURL,
	}
}

// CreateUploadURL registers an image and returns a presigned PUT url for it.
func CreateUploadURL(filesService interfaces.FilesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "CreateUploadURL", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, err := utils.RequireUserId(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		var request createUploadURLRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			respondError(c, velog_errors.Wrap(velog_errors.KindValidation, err, "Invalid request body"))
			return
		}

		result, err := filesService.CreateUploadURL(ctx, userId, interfaces.FileRequest{
			Type:     models.UserImageType(request.Type),
			RefID:    request.RefID,
			Filename: request.Filename,
			Filesize: request.Filesize,
		})
		if err != nil {
			tracing.TraceErr(span, err)
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, toUploadURLResponse(result))
	}
}

// Upload stores a multipart image through the server.
func Upload(filesService interfaces.FilesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "Upload", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, err := utils.RequireUserId(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			respondError(c, velog_errors.Wrap(velog_errors.KindValidation, err, "image is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			tracing.TraceErr(span, err)
			respondError(c, errors.Wrap(err, "failed to open uploaded file"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, files.MaxFileSize+1))
		if err != nil {
			tracing.TraceErr(span, err)
			respondError(c, errors.Wrap(err, "failed to read uploaded file"))
			return
		}

		result, err := filesService.Upload(ctx, userId, interfaces.FileRequest{
			Type:     models.UserImageType(c.PostForm("type")),
			RefID:    c.PostForm("ref_id"),
			Filename: fileHeader.Filename,
			Filesize: int64(len(data)),
		}, data, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			tracing.TraceErr(span, err)
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, toUploadURLResponse(result))
	}
}
