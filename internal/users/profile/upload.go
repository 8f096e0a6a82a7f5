// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/constants"
	requestutil "github.com/getemall/getemall/internal/platform/request"
	"github.com/getemall/getemall/internal/platform/respond"
	"github.com/getemall/getemall/pkg/uuid"
)

// # Profile Pictures

const pictureTip = "Your profile picture should be a PNG, JPG, or GIF file under 1 MB in size"

// uploadSlack is how far past the file limit a request body may go so that
// oversized pictures still get a precise message instead of a 413.
const uploadSlack = 8 * 1024 * 1024

var pictureExtensions = []string{"gif", "jpg", "jpeg", "png"}

// pictureResponse describes an accepted picture.
type pictureResponse struct {
	Filename    string `json:"filename"`
	Extension   string `json:"extension"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	Key         string `json:"key,omitempty"`
}

/*
POST /api/profiles/me/picture.

Request (multipart/form-data):
  - avatar: the image file

Response:
  - 200: pictureResponse
  - 400: Missing file, file too big or not an image
  - 413: Request body far beyond the limit
  - 415: Not a multipart request
  - 503: Object storage unavailable
*/
func (handler *Handler) uploadPicture(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requestutil.RequireMediaType(request, constants.MediaTypeMultipart); err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUploadBytes+uploadSlack)
	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge("File is too big. "+pictureTip))
			return
		}
		respond.Error(writer, request, apperr.BadRequest("Malformed multipart request"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	file, header, err := request.FormFile(constants.AvatarFormField)
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Missing '"+constants.AvatarFormField+"' file"))
		return
	}
	defer file.Close()

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if header.Size > handler.maxUploadBytes {
		respond.Error(writer, request, apperr.BadRequest(fmt.Sprintf("File is too big (%d MB). %s", header.Size/1024/1024, pictureTip)))
		return
	}
	if !slices.Contains(pictureExtensions, extension) {
		respond.Error(writer, request, apperr.BadRequest("Invalid file type. "+pictureTip))
		return
	}

	picture := pictureResponse{
		Filename:    header.Filename,
		Extension:   extension,
		Size:        header.Size,
		ContentType: header.Header.Get(constants.HeaderContentType),
	}

	if handler.objects != nil {
		key := fmt.Sprintf("avatars/%s/%s.%s", user.Name, uuid.New(), extension)
		if err := handler.objects.Put(request.Context(), key, file, header.Size, picture.ContentType); err != nil {
			handler.logger.ErrorContext(request.Context(), "picture_store_failed",
				slog.String("user", user.Name),
				slog.String("key", key),
				slog.Any("error", err),
			)
			respond.Error(writer, request, apperr.ServiceUnavailable("Unable to store the profile picture"))
			return
		}
		picture.Key = key
	}

	handler.logger.InfoContext(request.Context(), "picture_uploaded",
		slog.String("user", user.Name),
		slog.Int64("size", picture.Size),
	)
	respond.OK(writer, picture)
}
