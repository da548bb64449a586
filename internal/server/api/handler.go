package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"songvault/internal/common"
	"songvault/internal/server/files"
)

// allowedContentTypes is the upload allow-list; anything else is rejected
// before reaching the pipeline.
var allowedContentTypes = map[string]struct{}{
	"audio/mpeg": {},
	"audio/wav":  {},
	"audio/flac": {},
	"audio/ogg":  {},
}

func (s *Server) uploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	uploads := make([]files.Upload, 0, len(headers))
	for _, header := range headers {
		contentType := header.Header.Get("Content-Type")
		if _, ok := allowedContentTypes[contentType]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type."})
			return
		}
		if header.Size > s.maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large."})
			return
		}

		f, err := header.Open()
		if err != nil {
			s.logger.Error(c.Request.Context(), "reading uploaded file failed", "filename", header.Filename, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed"})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			s.logger.Error(c.Request.Context(), "reading uploaded file failed", "filename", header.Filename, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed"})
			return
		}

		uploads = append(uploads, files.Upload{
			Filename:    header.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	records, err := s.files.UploadBatch(c.Request.Context(), uploads)
	if err != nil {
		if errors.Is(err, common.ErrNoFilesUploaded) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
			return
		}
		s.logger.Error(c.Request.Context(), "upload failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Files uploaded successfully!", "files": records})
}

func (s *Server) getFiles(c *gin.Context) {
	records, err := s.files.List(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "listing files failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve files"})
		return
	}

	if records == nil {
		records = []*files.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) viewUploadedFile(c *gin.Context) {
	key := decodeKeyParam(c.Param("key"))

	c.Header("Content-Disposition", "inline")
	c.Redirect(http.StatusFound, s.files.PublicURL(key))
}

func (s *Server) viewCoverImage(c *gin.Context) {
	key := decodeKeyParam(c.Param("key"))

	c.Header("Content-Disposition", "inline")
	c.Redirect(http.StatusFound, s.files.PublicURL(key))
}

func (s *Server) downloadUploadedFile(c *gin.Context) {
	key := decodeKeyParam(c.Param("key"))

	signedURL, err := s.files.PresignDownload(c.Request.Context(), key)
	if err != nil {
		s.logger.Error(c.Request.Context(), "presigning download failed", "key", key, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download link"})
		return
	}

	c.Redirect(http.StatusFound, signedURL)
}

func (s *Server) deleteUploadedFile(c *gin.Context) {
	err := s.files.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "deleting file failed", "id", c.Param("id"), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// statusPage answers any unmatched route with the base address and live
// database connectivity.
func (s *Server) statusPage(c *gin.Context) {
	status := "Database Not Connected."

	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(pingCtx); err == nil {
			status = "Database Connected Successfully!"
		}
	}

	c.String(http.StatusOK, "Server running on - %s\n%s", s.baseURL, status)
}

// decodeKeyParam percent-decodes a key path parameter, falling back to the
// raw value when it is not valid percent-encoding.
func decodeKeyParam(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
