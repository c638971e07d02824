package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/models"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
)

// multipartSlack is allowed on top of MaxUploadBytes for the form fields
// and multipart boundaries around the file.
const multipartSlack = 1 << 20

// upload is a validated datasheet from a multipart request.
type upload struct {
	filename string
	data     []byte
}

// readUpload reads and validates the "file" field. On failure it writes a
// 400 response and returns false.
func (h *Handler) readUpload(c *gin.Context) (*upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartSlack)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			invalidPDF(c)
			return nil, false
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no_file",
			Message: "No file found",
			Code:    http.StatusBadRequest,
		})
		return nil, false
	}
	defer file.Close()

	if header.Size > h.MaxUploadBytes {
		invalidPDF(c)
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return nil, false
	}

	// The declared Content-Type of the part is client-controlled; sniff instead.
	if !pdf.IsPDF(data) {
		invalidPDF(c)
		return nil, false
	}

	return &upload{filename: header.Filename, data: data}, true
}

func invalidPDF(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_pdf",
		Message: "Invalid PDF file",
		Code:    http.StatusBadRequest,
	})
}
