package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compress gzips responses for clients that accept it.
// Excluded paths are served as-is.
func Compress(excludedPaths ...string) gin.HandlerFunc {
	return ginGzip.Gzip(ginGzip.DefaultCompression, ginGzip.WithExcludedPaths(excludedPaths))
}

// DecompressRequest transparently handles gzip encoded request bodies.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		reader, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "malformed gzip body"})
			return
		}
		defer func() {
			_ = reader.Close()
			_ = body.Close()
		}()

		c.Request.Body = io.NopCloser(reader)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
